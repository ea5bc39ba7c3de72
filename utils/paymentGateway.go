package utils

import (
	"encoding/json"
	"fmt"
	"lms/config"
	"log"

	"github.com/go-resty/resty/v2"
)

// VerifyGatewayPayment asks the configured payment gateway whether the
// reported payment exists, is captured, and matches the expected amount
func VerifyGatewayPayment(gatewayPaymentID string, expectedAmount float64) (bool, error) {
	client := resty.New()

	resp, err := client.R().
		SetHeader("Authorization", "Bearer "+config.AppConfig.GatewayApiKey).
		Get(fmt.Sprintf("%s/payments/%s", config.AppConfig.GatewayApiURL, gatewayPaymentID))
	if err != nil {
		log.Printf("Gateway request error: %v", err)
		return false, err
	}
	if resp.StatusCode() != 200 {
		log.Printf("Gateway returned status %d: %s", resp.StatusCode(), resp.String())
		return false, nil
	}

	var payment struct {
		Status string  `json:"status"`
		Amount float64 `json:"amount"`
	}
	if err := json.Unmarshal(resp.Body(), &payment); err != nil {
		return false, err
	}

	if payment.Status != "captured" && payment.Status != "succeeded" {
		return false, nil
	}
	return payment.Amount >= expectedAmount, nil
}
