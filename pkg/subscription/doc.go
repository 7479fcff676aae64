// Package subscription manages tenant subscription lifecycle for the
// platform: plan variants priced per billing cycle, period and grace-period
// date arithmetic, read-time status projection, invoices, and plan limit
// enforcement.
//
// # Plans and pricing
//
// A BasePlanConfig is priced per month and expanded into three Plan variants
// (1, 6 and 12 month cycles) carrying fixed upfront discounts of 0%, 10% and
// 20%. All money math uses shopspring/decimal rounded to 2 decimal places:
//
//	price   = base × months × (1 − discount)
//	monthly = price / months
//
// # Lifecycle
//
// A tenant's Subscription is created on first plan purchase and advances its
// period window on every settled renewal invoice. When a period lapses
// without payment the record enters a fixed 7-day grace window; only after
// the grace window lapses does it become expired. Cancellation takes effect
// at period end with no grace window.
//
// Status is never trusted from storage alone: callers read
// Service.Status (or StatusDetailsAt for pure computation), which recomputes
// the caller-facing snapshot from the wall clock on every read. The snapshot
// drives dashboard renewal banners (4–7 days remaining), urgent notices
// (1–3 days) and the payment wall (RequiresPayment).
//
// # Quick start
//
//	svc, err := subscription.NewService(ctx,
//		subscription.StaticPlans(
//			subscription.BasePlanConfig{
//				ID:               "growth",
//				Name:             "Growth",
//				BaseMonthlyPrice: decimal.NewFromInt(79),
//				Limits: map[subscription.Resource]int64{
//					subscription.ResourceProducts: 500,
//					subscription.ResourceStaff:    subscription.Unlimited,
//				},
//				Features: []subscription.Feature{subscription.FeatureCustomDomain},
//			},
//		),
//		subscription.NewMongoStore(db),
//		subscription.NewMongoInvoiceStore(db),
//		subscription.WithCounter(subscription.ResourceProducts, countProducts),
//	)
//
//	sub, inv, err := svc.Purchase(ctx, tenantID, subscription.VariantID("growth", subscription.CycleAnnual))
//	details, err := svc.Status(ctx, tenantID)
//	if details.RequiresPayment {
//		// block writes, show payment wall
//	}
package subscription
