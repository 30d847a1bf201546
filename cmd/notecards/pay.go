package main

import (
	"errors"
	"fmt"

	"github.com/phrazzld/notecards/internal/domain"
	"github.com/phrazzld/notecards/internal/payment"
	"github.com/spf13/cobra"
)

func newPayCmd(c *cli) *cobra.Command {
	var req payment.Request

	cmd := &cobra.Command{
		Use:     "pay",
		Short:   "Start an M-Pesa checkout for a plan",
		Example: `  notecards pay --plan pro --amount 500 --phone 254712345678`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := payment.NewService(c.client, c.logger)
			if err != nil {
				return err
			}

			checkout, err := svc.Initiate(cmd.Context(), req)
			if err != nil {
				if errors.Is(err, domain.ErrValidation) {
					return err
				}
				c.logger.Debug("payment failed", "error", err)
				return errors.New("failed to create payment session")
			}

			fmt.Fprintf(c.out, "Payment started for %s (%.2f). Confirm the prompt on your phone.\n",
				req.Plan.Name, req.Plan.Amount)
			fmt.Fprintf(c.out, "Invoice: %s\n", checkout.Invoice)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Plan.Name, "plan", "", "plan name")
	cmd.Flags().Float64Var(&req.Plan.Amount, "amount", 0, "plan price")
	cmd.Flags().StringVar(&req.PhoneNumber, "phone", "", "M-Pesa phone number, e.g. 254712345678")
	cmd.Flags().StringVar(&req.Email, "email", "", "receipt email (optional)")
	_ = cmd.MarkFlagRequired("plan")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}
