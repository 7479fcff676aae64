package subscription

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Collection names inside the shared platform database.
const (
	subscriptionsCollection = "tenant_subscriptions"
	invoicesCollection      = "subscription_invoices"
)

// MongoStore persists subscriptions in MongoDB, one document per tenant
// keyed by tenant ID and upserted on save.
type MongoStore struct {
	coll *mongo.Collection
}

// NewMongoStore creates a subscription store over the platform database.
// Panics on nil to fail fast during service wiring.
func NewMongoStore(db *mongo.Database) *MongoStore {
	if db == nil {
		panic("subscription: mongo database is required")
	}
	return &MongoStore{coll: db.Collection(subscriptionsCollection)}
}

var _ Store = (*MongoStore)(nil)

// subscriptionDoc is the wire shape. IDs are stored as canonical UUID
// strings so documents stay readable in shell sessions and dashboards.
type subscriptionDoc struct {
	TenantID           string     `bson:"_id"`
	PlanID             string     `bson:"planId"`
	Cycle              int        `bson:"cycle"`
	Status             string     `bson:"status"`
	CurrentPeriodStart time.Time  `bson:"currentPeriodStart"`
	CurrentPeriodEnd   time.Time  `bson:"currentPeriodEnd"`
	TrialEndsAt        *time.Time `bson:"trialEndsAt,omitempty"`
	GracePeriodEndsAt  *time.Time `bson:"gracePeriodEndsAt,omitempty"`
	CancelAtPeriodEnd  bool       `bson:"cancelAtPeriodEnd"`
	AutoRenew          bool       `bson:"autoRenew"`
	CreatedAt          time.Time  `bson:"createdAt"`
	UpdatedAt          time.Time  `bson:"updatedAt"`
	CancelledAt        *time.Time `bson:"cancelledAt,omitempty"`
}

func (s *MongoStore) Get(ctx context.Context, tenantID uuid.UUID) (*Subscription, error) {
	var doc subscriptionDoc
	err := s.coll.FindOne(ctx, bson.M{"_id": tenantID.String()}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, err
	}
	return docToSubscription(doc)
}

func (s *MongoStore) Save(ctx context.Context, sub *Subscription) error {
	doc := subscriptionDoc{
		TenantID:           sub.TenantID.String(),
		PlanID:             sub.PlanID,
		Cycle:              sub.Cycle.Months(),
		Status:             string(sub.Status),
		CurrentPeriodStart: sub.CurrentPeriodStart,
		CurrentPeriodEnd:   sub.CurrentPeriodEnd,
		TrialEndsAt:        sub.TrialEndsAt,
		GracePeriodEndsAt:  sub.GracePeriodEndsAt,
		CancelAtPeriodEnd:  sub.CancelAtPeriodEnd,
		AutoRenew:          sub.AutoRenew,
		CreatedAt:          sub.CreatedAt,
		UpdatedAt:          sub.UpdatedAt,
		CancelledAt:        sub.CancelledAt,
	}
	_, err := s.coll.ReplaceOne(ctx,
		bson.M{"_id": doc.TenantID},
		doc,
		options.Replace().SetUpsert(true),
	)
	return err
}

func docToSubscription(doc subscriptionDoc) (*Subscription, error) {
	tenantID, err := uuid.Parse(doc.TenantID)
	if err != nil {
		return nil, err
	}
	return &Subscription{
		TenantID:           tenantID,
		PlanID:             doc.PlanID,
		Cycle:              BillingCycle(doc.Cycle),
		Status:             Status(doc.Status),
		CurrentPeriodStart: doc.CurrentPeriodStart,
		CurrentPeriodEnd:   doc.CurrentPeriodEnd,
		TrialEndsAt:        doc.TrialEndsAt,
		GracePeriodEndsAt:  doc.GracePeriodEndsAt,
		CancelAtPeriodEnd:  doc.CancelAtPeriodEnd,
		AutoRenew:          doc.AutoRenew,
		CreatedAt:          doc.CreatedAt,
		UpdatedAt:          doc.UpdatedAt,
		CancelledAt:        doc.CancelledAt,
	}, nil
}

// MongoInvoiceStore persists the append-only invoice history.
type MongoInvoiceStore struct {
	coll *mongo.Collection
}

// NewMongoInvoiceStore creates an invoice store over the platform database.
func NewMongoInvoiceStore(db *mongo.Database) *MongoInvoiceStore {
	if db == nil {
		panic("subscription: mongo database is required")
	}
	return &MongoInvoiceStore{coll: db.Collection(invoicesCollection)}
}

var _ InvoiceStore = (*MongoInvoiceStore)(nil)

// invoiceDoc stores monetary amounts as decimal strings to avoid binary
// float drift in billing documents.
type invoiceDoc struct {
	ID          string           `bson:"_id"`
	TenantID    string           `bson:"tenantId"`
	PlanID      string           `bson:"planId"`
	PeriodStart time.Time        `bson:"periodStart"`
	PeriodEnd   time.Time        `bson:"periodEnd"`
	Items       []invoiceItemDoc `bson:"items"`
	Subtotal    string           `bson:"subtotal"`
	Discount    string           `bson:"discount"`
	Tax         string           `bson:"tax"`
	Amount      string           `bson:"amount"`
	Status      string           `bson:"status"`
	CreatedAt   time.Time        `bson:"createdAt"`
	PaidAt      *time.Time       `bson:"paidAt,omitempty"`
}

type invoiceItemDoc struct {
	Description string `bson:"description"`
	Quantity    int64  `bson:"quantity"`
	UnitPrice   string `bson:"unitPrice"`
	Amount      string `bson:"amount"`
}

func (s *MongoInvoiceStore) Create(ctx context.Context, inv *Invoice) error {
	_, err := s.coll.InsertOne(ctx, invoiceToDoc(inv))
	return err
}

func (s *MongoInvoiceStore) Get(ctx context.Context, id uuid.UUID) (*Invoice, error) {
	var doc invoiceDoc
	err := s.coll.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrInvoiceNotFound
		}
		return nil, err
	}
	return docToInvoice(doc)
}

func (s *MongoInvoiceStore) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*Invoice, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.coll.Find(ctx, bson.M{"tenantId": tenantID.String()}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []invoiceDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	out := make([]*Invoice, 0, len(docs))
	for _, doc := range docs {
		inv, err := docToInvoice(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	return out, nil
}

func (s *MongoInvoiceStore) Update(ctx context.Context, inv *Invoice) error {
	res, err := s.coll.ReplaceOne(ctx, bson.M{"_id": inv.ID.String()}, invoiceToDoc(inv))
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrInvoiceNotFound
	}
	return nil
}

func invoiceToDoc(inv *Invoice) invoiceDoc {
	items := make([]invoiceItemDoc, 0, len(inv.Items))
	for _, item := range inv.Items {
		items = append(items, invoiceItemDoc{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice.String(),
			Amount:      item.Amount.String(),
		})
	}
	return invoiceDoc{
		ID:          inv.ID.String(),
		TenantID:    inv.TenantID.String(),
		PlanID:      inv.PlanID,
		PeriodStart: inv.PeriodStart,
		PeriodEnd:   inv.PeriodEnd,
		Items:       items,
		Subtotal:    inv.Subtotal.String(),
		Discount:    inv.Discount.String(),
		Tax:         inv.Tax.String(),
		Amount:      inv.Amount.String(),
		Status:      string(inv.Status),
		CreatedAt:   inv.CreatedAt,
		PaidAt:      inv.PaidAt,
	}
}

func docToInvoice(doc invoiceDoc) (*Invoice, error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, err
	}
	tenantID, err := uuid.Parse(doc.TenantID)
	if err != nil {
		return nil, err
	}

	amounts := make([]decimal.Decimal, 4)
	for i, raw := range []string{doc.Subtotal, doc.Discount, doc.Tax, doc.Amount} {
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, err
		}
		amounts[i] = d
	}

	items := make([]InvoiceItem, 0, len(doc.Items))
	for _, item := range doc.Items {
		unit, err := decimal.NewFromString(item.UnitPrice)
		if err != nil {
			return nil, err
		}
		amount, err := decimal.NewFromString(item.Amount)
		if err != nil {
			return nil, err
		}
		items = append(items, InvoiceItem{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   unit,
			Amount:      amount,
		})
	}

	return &Invoice{
		ID:          id,
		TenantID:    tenantID,
		PlanID:      doc.PlanID,
		PeriodStart: doc.PeriodStart,
		PeriodEnd:   doc.PeriodEnd,
		Items:       items,
		Subtotal:    amounts[0],
		Discount:    amounts[1],
		Tax:         amounts[2],
		Amount:      amounts[3],
		Status:      InvoiceStatus(doc.Status),
		CreatedAt:   doc.CreatedAt,
		PaidAt:      doc.PaidAt,
	}, nil
}
