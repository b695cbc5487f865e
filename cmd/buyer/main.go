package main

// This script plays the buyer side of the paywall against a running server:
// it checks access to one item, pays for it with the simulated purchaser when
// it is locked, and prints the unlocked payload.

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"paywall-backend/accessclient"
	"paywall-backend/config"
	"paywall-backend/payment"
	"paywall-backend/utils"
)

func main() {
	baseURL := flag.String("server", "http://localhost:8080", "Paywall server base URL")
	contentID := flag.String("content", "", "Content ID to unlock")
	payer := flag.String("payer", "", "Payer wallet, empty to pay without a wallet")
	network := flag.String("network", string(payment.DefaultNetwork), "Payment network (base or solana)")
	flag.Parse()

	if *contentID == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(*baseURL, *contentID, *payer, *network); err != nil {
		fmt.Fprintf(os.Stderr, "buyer: %v\n", err)
		os.Exit(1)
	}
}

func run(baseURL, contentID, payer, networkName string) error {
	cfg, err := config.LoadClient()
	if err != nil {
		return err
	}
	utils.InitLogger(cfg.Logging.Level, cfg.Logging.File)

	network, err := payment.ParseNetwork(networkName)
	if err != nil {
		return err
	}
	client, err := accessclient.NewClient(baseURL)
	if err != nil {
		return err
	}

	purchaser := payment.NewSimulatedPurchaser(cfg.Payment.SimulatedDelay, cfg.Payment.ProjectID, map[payment.Network]string{
		payment.NetworkBase:   cfg.Payment.BaseMerchantAddress,
		payment.NetworkSolana: cfg.Payment.SolanaMerchantAddress,
	})

	ctrl := accessclient.NewController(client, purchaser, contentID,
		accessclient.WithNetwork(network),
		accessclient.WithObserver(func(s accessclient.Snapshot) {
			fmt.Printf("state: %s\n", s.State)
		}),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	snap, err := ctrl.Refresh(ctx)
	if err != nil {
		return err
	}
	if snap.State == accessclient.StateLocked {
		if snap.PaymentRequired == nil {
			return fmt.Errorf("access check failed: %v", snap.Err)
		}
		fmt.Printf("paying %s %s to %s on %s\n", snap.PaymentRequired.Amount, snap.PaymentRequired.Currency, snap.PaymentRequired.PayToAddress, network)
		if snap, err = ctrl.Purchase(ctx, payer); err != nil {
			return err
		}
	}

	if snap.State != accessclient.StateUnlocked {
		return fmt.Errorf("content still locked: %v", snap.Err)
	}
	fmt.Printf("%s: %s\n", snap.Payload.Type, snap.Payload.Data)
	return nil
}
