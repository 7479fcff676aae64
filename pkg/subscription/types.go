package subscription

// Resource represents a countable tenant resource type.
type Resource string

const (
	ResourceProducts    Resource = "products"
	ResourceOrders      Resource = "orders" // measured per billing period
	ResourceStaff       Resource = "staff"
	ResourceCategories  Resource = "categories"
	ResourceCustomPages Resource = "custom_pages"
	ResourceStorage     Resource = "storage" // measured in GB
	ResourceDomains     Resource = "domains"
)

const (
	// Unlimited indicates no limit for a resource (-1 chosen for SQL compatibility)
	Unlimited int64 = -1
)

// Feature represents a plan-specific capability that can be enabled/disabled.
type Feature string

const (
	FeatureCustomDomain    Feature = "custom_domain"
	FeatureDedicatedDB     Feature = "dedicated_database"
	FeatureAnalytics       Feature = "analytics"
	FeatureAbandonedCart   Feature = "abandoned_cart"
	FeatureCourierTracking Feature = "courier_tracking"
	FeaturePrioritySupport Feature = "priority_support"
	FeatureAPIAccess       Feature = "api_access"
	FeatureWhiteLabel      Feature = "white_label"
)

// BillingCycle is the recurring period a subscription is paid for, in
// calendar months. Longer cycles carry fixed upfront discounts.
type BillingCycle int

const (
	CycleMonthly    BillingCycle = 1
	CycleSemiAnnual BillingCycle = 6
	CycleAnnual     BillingCycle = 12
)

// cycleDiscounts holds the fixed discount percentage per billing cycle.
// Pricing parity with already-issued invoices depends on these values.
var cycleDiscounts = map[BillingCycle]int64{
	CycleMonthly:    0,
	CycleSemiAnnual: 10,
	CycleAnnual:     20,
}

// Cycles lists the supported billing cycles in ascending order.
func Cycles() []BillingCycle {
	return []BillingCycle{CycleMonthly, CycleSemiAnnual, CycleAnnual}
}

// Valid reports whether the cycle is one of the supported billing periods.
func (c BillingCycle) Valid() bool {
	_, ok := cycleDiscounts[c]
	return ok
}

// Months returns the cycle length in calendar months.
func (c BillingCycle) Months() int {
	return int(c)
}

// DiscountPercent returns the fixed discount applied to the cycle's upfront
// price. Zero for unknown cycles.
func (c BillingCycle) DiscountPercent() int64 {
	return cycleDiscounts[c]
}

// Status represents the current state of a tenant subscription.
type Status string

const (
	StatusActive      Status = "active"
	StatusTrial       Status = "trial"
	StatusExpired     Status = "expired"
	StatusCancelled   Status = "cancelled"
	StatusPastDue     Status = "past_due"
	StatusGracePeriod Status = "grace_period"
)

// UsageInfo contains the current usage and limit for a resource.
type UsageInfo struct {
	Current int64
	Limit   int64
}
