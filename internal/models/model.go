package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Auction direction
const (
	AuctionTypeForward = "forward"
	AuctionTypeReverse = "reverse"
)

// SubTypeYankee is the multi-unit auction sub-type that has no single-unit increment
const SubTypeYankee = "yankee"

// Bid increment strategies
const (
	IncrementFixed      = "fixed"
	IncrementPercentage = "percentage"
	IncrementRangeBased = "range-based"
)

// Launch types and the status derived from them at creation
const (
	LaunchImmediate = "immediate"
	LaunchScheduled = "scheduled"

	StatusActive    = "active"
	StatusScheduled = "scheduled"
)

// Profile roles and account types
const (
	RoleAdmin  = "admin"
	RoleBuyer  = "buyer"
	RoleSeller = "seller"
	RoleBoth   = "both"

	ProfileTypeIndividual   = "individual"
	ProfileTypeOrganization = "organization"
)

// IncrementRule is one band of a bid increment table. MaxBidAmount nil means unbounded.
type IncrementRule struct {
	MinBidAmount   float64  `json:"minBidAmount"`
	MaxBidAmount   *float64 `json:"maxBidAmount,omitempty"`
	IncrementValue float64  `json:"incrementValue"`
	IncrementType  string   `json:"incrementType,omitempty"`
}

// Covers reports whether amount falls in [MinBidAmount, MaxBidAmount)
func (r IncrementRule) Covers(amount float64) bool {
	if amount < r.MinBidAmount {
		return false
	}
	return r.MaxBidAmount == nil || amount < *r.MaxBidAmount
}

// Lot is one line of a multi-lot auction
type Lot struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	StartPrice  float64 `json:"startPrice"`
}

// Question is a participant question on an auction, optionally answered by the seller
type Question struct {
	User       string     `json:"user"`
	Question   string     `json:"question"`
	Answer     string     `json:"answer,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	AnsweredAt *time.Time `json:"answeredAt,omitempty"`
}

// RequiredDocument names a document a supplier must submit on a reverse auction
type RequiredDocument struct {
	Name string `json:"name"`
}

// AuctionDuration is how long an auction runs once started
type AuctionDuration struct {
	Days    int `json:"days"`
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
}

// Duration converts the stored duration into a time.Duration
func (d AuctionDuration) Duration() time.Duration {
	return time.Duration(d.Days)*24*time.Hour + time.Duration(d.Hours)*time.Hour + time.Duration(d.Minutes)*time.Minute
}

// Auction is the central marketplace entity. Column names follow the
// historical flat naming of the auctions table.
type Auction struct {
	ID                 string                                `gorm:"column:id;primaryKey;type:varchar(36)" json:"id"`
	CreatedBy          string                                `gorm:"column:createdby;not null;index;<-:create" json:"createdby"`
	Category           string                                `gorm:"column:category;index" json:"category"`
	AuctionType        string                                `gorm:"column:auctiontype;not null" json:"auctiontype"`
	AuctionSubType     string                                `gorm:"column:auctionsubtype;not null" json:"auctionsubtype"`
	ProductName        string                                `gorm:"column:productname" json:"productname"`
	ProductDescription string                                `gorm:"column:productdescription;type:text" json:"productdescription"`
	ProductImages      datatypes.JSONSlice[string]           `gorm:"column:productimages" json:"productimages"`
	ProductDocuments   datatypes.JSONSlice[string]           `gorm:"column:productdocuments" json:"productdocuments"`
	Attributes         datatypes.JSON                        `gorm:"column:attributes" json:"attributes"`
	Specifications     datatypes.JSON                        `gorm:"column:specifications" json:"specifications"`
	SKU                string                                `gorm:"column:sku" json:"sku"`
	Brand              string                                `gorm:"column:brand" json:"brand"`
	Model              string                                `gorm:"column:model" json:"model"`
	StartPrice         float64                               `gorm:"column:startprice" json:"startprice"`
	TargetPrice        float64                               `gorm:"column:targetprice" json:"targetprice"`
	CurrentBid         float64                               `gorm:"column:currentbid" json:"currentbid"`
	CurrentBidder      string                                `gorm:"column:currentbidder" json:"currentbidder"`
	MinimumIncrement   float64                               `gorm:"column:minimumincrement" json:"minimumincrement"`
	Percent            *float64                              `gorm:"column:percent" json:"percent"`
	BidIncrementType   string                                `gorm:"column:bidincrementtype" json:"bidincrementtype"`
	BidIncrementRules  datatypes.JSONSlice[IncrementRule]    `gorm:"column:bidincrementrules" json:"bidincrementrules"`
	LaunchType         string                                `gorm:"column:launchtype" json:"launchtype"`
	ScheduledStart     time.Time                             `gorm:"column:scheduledstart" json:"scheduledstart"`
	AuctionDuration    datatypes.JSONType[AuctionDuration]   `gorm:"column:auctionduration" json:"auctionduration"`
	Status             string                                `gorm:"column:status;index" json:"status"`
	Approved           bool                                  `gorm:"column:approved;not null" json:"approved"`
	Editable           bool                                  `gorm:"column:editable;not null" json:"editable"`
	Ended              bool                                  `gorm:"column:ended;not null" json:"ended"`
	IsMultiLot         bool                                  `gorm:"column:ismultilot;not null" json:"ismultilot"`
	Lots               datatypes.JSONSlice[Lot]              `gorm:"column:lots" json:"lots"`
	Participants       datatypes.JSONSlice[string]           `gorm:"column:participants" json:"participants"`
	Questions          datatypes.JSONSlice[Question]         `gorm:"column:questions" json:"questions"`
	BidCount           int                                   `gorm:"column:bidcount;not null" json:"bidcount"`
	RequiredDocuments  datatypes.JSONSlice[RequiredDocument] `gorm:"column:requireddocuments" json:"requireddocuments"`
	CreatedAt          time.Time                             `gorm:"column:created_at;index" json:"created_at"`
	UpdatedAt          time.Time                             `gorm:"column:updated_at" json:"updated_at"`
}

func (Auction) TableName() string {
	return "auctions"
}

// BeforeSave keeps JSON columns non-null so rows always scan back cleanly
func (a *Auction) BeforeSave(tx *gorm.DB) error {
	if a.ProductImages == nil {
		a.ProductImages = datatypes.JSONSlice[string]{}
	}
	if a.ProductDocuments == nil {
		a.ProductDocuments = datatypes.JSONSlice[string]{}
	}
	if len(a.Attributes) == 0 {
		a.Attributes = datatypes.JSON("{}")
	}
	if len(a.Specifications) == 0 {
		a.Specifications = datatypes.JSON("{}")
	}
	if a.BidIncrementRules == nil {
		a.BidIncrementRules = datatypes.JSONSlice[IncrementRule]{}
	}
	if a.Lots == nil {
		a.Lots = datatypes.JSONSlice[Lot]{}
	}
	if a.Participants == nil {
		a.Participants = datatypes.JSONSlice[string]{}
	}
	if a.Questions == nil {
		a.Questions = datatypes.JSONSlice[Question]{}
	}
	if a.RequiredDocuments == nil {
		a.RequiredDocuments = datatypes.JSONSlice[RequiredDocument]{}
	}
	return nil
}

// IsReverse reports whether bids compete downward
func (a Auction) IsReverse() bool {
	return a.AuctionType == AuctionTypeReverse
}

// OpeningBid is the standing price before any bid is placed
func (a Auction) OpeningBid() float64 {
	if a.IsReverse() && a.StartPrice <= 0 {
		return a.TargetPrice
	}
	return a.StartPrice
}

// ApplyStanding recomputes the current bid, bidder and bid count from bids
func (a *Auction) ApplyStanding(bids []Bid) {
	a.BidCount = len(bids)
	if len(bids) == 0 {
		a.CurrentBid = a.OpeningBid()
		a.CurrentBidder = ""
		return
	}
	best := bids[0]
	for _, b := range bids[1:] {
		if Outranks(a.AuctionType, b, best) {
			best = b
		}
	}
	a.CurrentBid = best.Amount
	a.CurrentBidder = best.UserID
}

// HasParticipant reports whether userID already interacted with the auction
func (a Auction) HasParticipant(userID string) bool {
	for _, p := range a.Participants {
		if p == userID {
			return true
		}
	}
	return false
}

// Bid represents a user's bid on an auction
type Bid struct {
	ID        string    `gorm:"column:id;primaryKey;type:varchar(36)" json:"id"`
	AuctionID string    `gorm:"column:auction_id;not null;index" json:"auction_id"`
	UserID    string    `gorm:"column:user_id;not null;index" json:"user_id"`
	Amount    float64   `gorm:"column:amount;not null" json:"amount"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Bid) TableName() string {
	return "bids"
}

// Outranks reports whether bid a beats bid b for the given auction type.
// Forward auctions rank by highest amount, reverse by lowest; earlier bids win ties.
func Outranks(auctionType string, a, b Bid) bool {
	if a.Amount != b.Amount {
		if auctionType == AuctionTypeReverse {
			return a.Amount < b.Amount
		}
		return a.Amount > b.Amount
	}
	return a.CreatedAt.Before(b.CreatedAt)
}

// RankOrder is the SQL ordering matching Outranks
func RankOrder(auctionType string) string {
	if auctionType == AuctionTypeReverse {
		return "amount ASC, created_at ASC"
	}
	return "amount DESC, created_at ASC"
}

// Profile is a marketplace user
type Profile struct {
	ID                  string    `gorm:"column:id;primaryKey;type:varchar(36)" json:"id"`
	Email               string    `gorm:"column:email;uniqueIndex;not null" json:"email"`
	PasswordHash        []byte    `gorm:"column:password_hash" json:"-"`
	Role                string    `gorm:"column:role;not null" json:"role"`
	FName               string    `gorm:"column:fname" json:"fname"`
	LName               string    `gorm:"column:lname" json:"lname"`
	Location            string    `gorm:"column:location" json:"location"`
	Type                string    `gorm:"column:type" json:"type"`
	OrganizationName    string    `gorm:"column:organization_name" json:"organizationName,omitempty"`
	OrganizationContact string    `gorm:"column:organization_contact" json:"organizationContact,omitempty"`
	CreatedAt           time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt           time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Profile) TableName() string {
	return "profiles"
}

// CanSell reports whether the profile may own auctions
func (p Profile) CanSell() bool {
	return p.Role == RoleSeller || p.Role == RoleBoth
}

// CanBid reports whether the profile may place bids
func (p Profile) CanBid() bool {
	return p.Role == RoleBuyer || p.Role == RoleBoth
}

// ProfileSummary is a profile with its derived activity counts
type ProfileSummary struct {
	Profile
	AuctionCount int64 `json:"auctionCount"`
	BidCount     int64 `json:"bidCount"`
}

// Actor is the authenticated caller of an operation
type Actor struct {
	UserID string
	Email  string
	Role   string
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// CanSell reports whether the actor may create listings
func (a Actor) CanSell() bool {
	return a.Role == RoleSeller || a.Role == RoleBoth || a.Role == RoleAdmin
}

// CanBid reports whether the actor may place bids
func (a Actor) CanBid() bool {
	return a.Role == RoleBuyer || a.Role == RoleBoth
}

// Owns reports whether the actor created the auction
func (a Actor) Owns(auction Auction) bool {
	return a.Email != "" && a.Email == auction.CreatedBy
}
