package cms

import (
	"regadmin/dashboard/internal/docstore"
	"regadmin/dashboard/internal/timestamp"
)

// Collection names in the document store.
const (
	CouponCollection   = "coupon"
	CurrencyCollection = "currency"
	FAQCollection      = "faq"
	LanguageCollection = "languages"
	ReferralCollection = "referral"
)

type Coupon struct {
	ID             string            `json:"id"`
	Code           string            `json:"code"`
	Title          string            `json:"title"`
	Description    string            `json:"description,omitempty"`
	DiscountType   string            `json:"discountType"`
	DiscountValue  float64           `json:"discountValue"`
	MinOrderAmount float64           `json:"minOrderAmount"`
	UsageLimit     int               `json:"usageLimit"`
	UsedCount      int               `json:"usedCount"`
	Enable         bool              `json:"enable"`
	IsDeleted      bool              `json:"isDeleted"`
	IsPublic       bool              `json:"isPublic"`
	StartDate      timestamp.Instant `json:"startDate"`
	EndDate        timestamp.Instant `json:"endDate"`
	CreatedAt      timestamp.Instant `json:"createdAt"`
	UpdatedAt      timestamp.Instant `json:"updatedAt"`
}

func DecodeCoupon(doc docstore.Document) Coupon {
	return Coupon{
		ID:             doc.ID(),
		Code:           str(doc, "code"),
		Title:          str(doc, "title"),
		Description:    str(doc, "description"),
		DiscountType:   str(doc, "discountType"),
		DiscountValue:  number(doc, "discountValue"),
		MinOrderAmount: number(doc, "minOrderAmount"),
		UsageLimit:     integer(doc, "usageLimit"),
		UsedCount:      integer(doc, "usedCount"),
		Enable:         flag(doc, "enable"),
		IsDeleted:      flag(doc, "isDeleted"),
		IsPublic:       flag(doc, "isPublic"),
		StartDate:      timestamp.Parse(doc["startDate"]),
		EndDate:        timestamp.Parse(doc["endDate"]),
		CreatedAt:      timestamp.Parse(doc["createdAt"]),
		UpdatedAt:      timestamp.Parse(doc["updatedAt"]),
	}
}

type Currency struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Code         string            `json:"code"`
	Symbol       string            `json:"symbol"`
	ExchangeRate float64           `json:"exchangeRate"`
	IsDefault    bool              `json:"isDefault"`
	Enable       bool              `json:"enable"`
	IsDeleted    bool              `json:"isDeleted"`
	CreatedAt    timestamp.Instant `json:"createdAt"`
	UpdatedAt    timestamp.Instant `json:"updatedAt"`
}

func DecodeCurrency(doc docstore.Document) Currency {
	return Currency{
		ID:           doc.ID(),
		Name:         str(doc, "name"),
		Code:         str(doc, "code"),
		Symbol:       str(doc, "symbol"),
		ExchangeRate: number(doc, "exchangeRate"),
		IsDefault:    flag(doc, "isDefault"),
		Enable:       flag(doc, "enable"),
		IsDeleted:    flag(doc, "isDeleted"),
		CreatedAt:    timestamp.Parse(doc["createdAt"]),
		UpdatedAt:    timestamp.Parse(doc["updatedAt"]),
	}
}

type FAQ struct {
	ID        string `json:"id"`
	Question  string `json:"question"`
	Answer    string `json:"answer"`
	Category  string `json:"category,omitempty"`
	Order     int    `json:"order"`
	Enable    bool   `json:"enable"`
	IsDeleted bool   `json:"isDeleted"`
	IsPublic  bool   `json:"isPublic"`
}

func DecodeFAQ(doc docstore.Document) FAQ {
	return FAQ{
		ID:        doc.ID(),
		Question:  str(doc, "question"),
		Answer:    str(doc, "answer"),
		Category:  str(doc, "category"),
		Order:     integer(doc, "order"),
		Enable:    flag(doc, "enable"),
		IsDeleted: flag(doc, "isDeleted"),
		IsPublic:  flag(doc, "isPublic"),
	}
}

type Language struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Code       string `json:"code"`
	NativeName string `json:"nativeName,omitempty"`
	Direction  string `json:"direction"`
	IsDefault  bool   `json:"isDefault"`
	Enable     bool   `json:"enable"`
	IsDeleted  bool   `json:"isDeleted"`
}

func DecodeLanguage(doc docstore.Document) Language {
	direction := str(doc, "direction")
	if direction == "" {
		direction = "ltr"
	}
	return Language{
		ID:         doc.ID(),
		Name:       str(doc, "name"),
		Code:       str(doc, "code"),
		NativeName: str(doc, "nativeName"),
		Direction:  direction,
		IsDefault:  flag(doc, "isDefault"),
		Enable:     flag(doc, "enable"),
		IsDeleted:  flag(doc, "isDeleted"),
	}
}

type Referral struct {
	ID           string  `json:"id"`
	Code         string  `json:"code"`
	ReferrerID   string  `json:"referrerId"`
	RefereeID    string  `json:"refereeId,omitempty"`
	RewardAmount float64 `json:"rewardAmount"`
	Status       string  `json:"status"`
	Enable       bool    `json:"enable"`
	IsDeleted    bool    `json:"isDeleted"`
}

func DecodeReferral(doc docstore.Document) Referral {
	return Referral{
		ID:           doc.ID(),
		Code:         str(doc, "code"),
		ReferrerID:   str(doc, "referrerId"),
		RefereeID:    str(doc, "refereeId"),
		RewardAmount: number(doc, "rewardAmount"),
		Status:       str(doc, "status"),
		Enable:       flag(doc, "enable"),
		IsDeleted:    flag(doc, "isDeleted"),
	}
}

// Services groups one repository per collection.
type Services struct {
	Coupons    *Repository[Coupon]
	Currencies *Repository[Currency]
	FAQs       *Repository[FAQ]
	Languages  *Repository[Language]
	Referrals  *Repository[Referral]
}

func NewServices(store docstore.Store) *Services {
	return &Services{
		Coupons:    NewRepository("coupon", store.Collection(CouponCollection), DecodeCoupon, true),
		Currencies: NewRepository("currency", store.Collection(CurrencyCollection), DecodeCurrency, true),
		FAQs:       NewRepository("faq", store.Collection(FAQCollection), DecodeFAQ, false),
		Languages:  NewRepository("language", store.Collection(LanguageCollection), DecodeLanguage, false),
		Referrals:  NewRepository("referral", store.Collection(ReferralCollection), DecodeReferral, false),
	}
}
