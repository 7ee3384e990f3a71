package service

import (
	"log"

	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"

	"tutorku_backend/internals/configs"
)

/* =========================================================
   Midtrans Client
========================================================= */

var SnapClient snap.Client

var midtransReady bool

// InitMidtrans must be called during app bootstrap. The provider stays
// disabled without a server key and payment creation falls back to Kaspi
// links; MIDTRANS_PRODUCTION=true switches off the sandbox.
func InitMidtrans(serverKey string) {
	if serverKey == "" {
		log.Println("⚠️ MIDTRANS_SERVER_KEY not set, midtrans provider disabled")
		return
	}
	if configs.GetEnv("MIDTRANS_PRODUCTION") == "true" {
		SnapClient.New(serverKey, midtrans.Production)
	} else {
		SnapClient.New(serverKey, midtrans.Sandbox)
	}
	midtransReady = true
	log.Println("✅ Midtrans Snap client initialized")
}

// MidtransAvailable reports whether the Snap client has been configured.
func MidtransAvailable() bool {
	return midtransReady
}

// GenerateSnapCheckout opens a hosted Snap session for a lesson payment and
// returns the redirect URL and token.
func GenerateSnapCheckout(orderID string, amount int, description, customerName, customerPhone string) (string, string, error) {
	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  orderID,
			GrossAmt: int64(amount),
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: customerName,
			Phone: customerPhone,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:       orderID,
				Price:    int64(amount),
				Qty:      1,
				Name:     description,
				Category: "lesson",
			},
		},
	}

	resp, err := SnapClient.CreateTransaction(req)
	if err != nil {
		return "", "", err
	}
	return resp.RedirectURL, resp.Token, nil
}
