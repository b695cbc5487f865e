package utils

import (
	"errors"
	"regexp"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"paywall-backend/models"
)

var ErrInvalidWallet = errors.New("invalid wallet address")

// Solana public keys are 32 bytes rendered in base58.
var solanaAddress = regexp.MustCompile(`^[1-9A-HJ-NP-Za-km-z]{32,44}$`)

// NormalizeWallet returns the canonical form of an EVM (EIP-55 checksum) or
// Solana address so the same wallet always maps to the same creator.
func NormalizeWallet(address string) (string, error) {
	address = strings.TrimSpace(address)
	if common.IsHexAddress(address) {
		return common.HexToAddress(address).Hex(), nil
	}
	if solanaAddress.MatchString(address) {
		return address, nil
	}
	return "", ErrInvalidWallet
}

// RegisterValidators adds the `wallet` and `contenttype` tags to gin's
// binding engine.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("unexpected binding engine")
	}
	if err := v.RegisterValidation("wallet", func(fl validator.FieldLevel) bool {
		_, err := NormalizeWallet(fl.Field().String())
		return err == nil
	}); err != nil {
		return err
	}
	return v.RegisterValidation("contenttype", func(fl validator.FieldLevel) bool {
		_, err := models.ParseContentType(fl.Field().String())
		return err == nil
	})
}
