package payments

import "fmt"

// Plan is a fixed checkout offering. Amounts are INR paise.
type Plan struct {
	PriceID string
	Amount  int64
	Name    string
	Credits int // 0 means unlimited usage
}

const (
	PlanMonthly = "monthly"
	PlanYearly  = "yearly"
	PlanPayg    = "payg"
)

// Plans is the fixed set of purchasable plan types. The payg credit count is
// declared here but not yet granted on completion; see the webhook handler.
var Plans = map[string]Plan{
	PlanMonthly: {
		PriceID: "price_monthly",
		Amount:  79900, // Rs.799
		Name:    "Monthly Plan",
	},
	PlanYearly: {
		PriceID: "price_yearly",
		Amount:  849900, // Rs.8499
		Name:    "Yearly Plan",
	},
	PlanPayg: {
		PriceID: "price_payg",
		Amount:  9900, // Rs.99
		Name:    "Pay-as-you-go",
		Credits: 10,
	},
}

// Description builds the product line shown on the hosted checkout page.
func (p Plan) Description() string {
	if p.Credits > 0 {
		return fmt.Sprintf("Repurposely %s - %d credits", p.Name, p.Credits)
	}
	return fmt.Sprintf("Repurposely %s - Unlimited usage", p.Name)
}

// grantsUnlimited reports whether completing a checkout for this plan type
// upgrades the user to the paid subscription plan.
func grantsUnlimited(planType string) bool {
	return planType == PlanMonthly || planType == PlanYearly
}
