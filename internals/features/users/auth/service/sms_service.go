package service

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"log"
	"math/big"
	"net/http"
	"net/url"
	"strings"
	"time"

	"tutorku_backend/internals/configs"
)

// SMS delivery through the SMS.RU gateway. Without SMS_API_ID every send is
// mocked to the console so local setups work out of the box.

const smsSenderName = "SCHOOL"

type SMSResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

var smsHTTPClient = &http.Client{Timeout: 10 * time.Second}

func SendSMSCode(phone, code string) SMSResult {
	formatted := NormalizePhone(phone)
	message := fmt.Sprintf("Ваш код подтверждения для онлайн-школы: %s. Никому не сообщайте этот код!", code)

	apiID := strings.TrimSpace(configs.SMSAPIKey)
	if apiID == "" {
		log.Printf("📱 MOCK SMS to %s: %s", formatted, code)
		return SMSResult{Success: true, Message: "SMS sent (mock mode - check server log)"}
	}

	resp, err := smsHTTPClient.PostForm("https://sms.ru/sms/send", url.Values{
		"api_id": {apiID},
		"to":     {formatted},
		"msg":    {message},
		"from":   {smsSenderName},
		"json":   {"1"},
	})
	if err != nil {
		log.Println("[ERROR] SMS send failed:", err)
		return SMSResult{Success: false, Message: "Failed to send SMS due to network error"}
	}
	defer resp.Body.Close()

	var body struct {
		Status     string `json:"status"`
		StatusText string `json:"status_text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		log.Println("[ERROR] SMS response decode failed:", err)
		return SMSResult{Success: false, Message: "Failed to parse SMS gateway response"}
	}

	if body.Status != "OK" {
		log.Printf("[ERROR] SMS gateway rejected send: %s", body.StatusText)
		return SMSResult{Success: false, Message: body.StatusText}
	}
	return SMSResult{Success: true, Message: "SMS sent successfully"}
}

// NormalizePhone reduces a phone number to the 7XXXXXXXXXX form the gateway
// expects: strip non-digits, 8-prefix becomes 7, bare 10-digit numbers get 7.
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()

	switch {
	case strings.HasPrefix(cleaned, "8"):
		return "7" + cleaned[1:]
	// Kazakh mobiles start with 7 even without the country code, so a bare
	// 10-digit number always needs the prefix; check length first.
	case len(cleaned) == 10:
		return "7" + cleaned
	case strings.HasPrefix(cleaned, "7"):
		return cleaned
	default:
		return cleaned
	}
}

// GenerateSMSCode returns a 4-digit one-time code.
func GenerateSMSCode() string {
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		// crypto/rand failing means something is deeply wrong; fall back to
		// a constant rather than panic in the request path.
		return "1000"
	}
	return fmt.Sprintf("%04d", n.Int64()+1000)
}
