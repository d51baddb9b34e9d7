package auction

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"auction-marketplace/internal/auctionerrors"
	"auction-marketplace/internal/models"
	"auction-marketplace/internal/repository"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

var (
	seller = models.Actor{UserID: "s1", Email: "seller@example.com", Role: models.RoleSeller}
	buyer  = models.Actor{UserID: "b1", Email: "buyer@example.com", Role: models.RoleBuyer}
	admin  = models.Actor{UserID: "a1", Email: "admin@example.com", Role: models.RoleAdmin}
)

var fixedNow = time.Date(2024, 10, 1, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T, strict bool) (*AuctionService, *repository.MockAuctionDB) {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockRepo := repository.NewMockAuctionDB(ctrl)
	svc := NewAuctionService(mockRepo, IncrementEvaluator{StrictRanges: strict})
	svc.now = func() time.Time { return fixedNow }
	return svc, mockRepo
}

// vaseInput is the canonical forward listing used across tests
func vaseInput() CreateAuctionInput {
	return CreateAuctionInput{
		AuctionType:       models.AuctionTypeForward,
		AuctionSubType:    "english",
		ProductName:       "Vase",
		StartPrice:        100,
		BidIncrementType:  models.IncrementFixed,
		BidIncrementRules: []models.IncrementRule{{IncrementValue: 10}},
		LaunchType:        models.LaunchImmediate,
	}
}

func reverseInput(docs string) CreateAuctionInput {
	in := vaseInput()
	in.AuctionType = models.AuctionTypeReverse
	in.StartPrice = 0
	in.TargetPrice = 5000
	if docs != "" {
		in.RequiredDocuments = json.RawMessage(docs)
	}
	return in
}

// expectCreate captures the auction handed to the repository
func expectCreate(mockRepo *repository.MockAuctionDB, stored *models.Auction) {
	mockRepo.EXPECT().CreateAuction(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, a *models.Auction) error {
			*stored = *a
			return nil
		})
}

func TestAuctionService_CreateAuction_ConcreteScenario(t *testing.T) {
	t.Parallel()
	svc, mockRepo := newTestService(t, false)

	var stored models.Auction
	expectCreate(mockRepo, &stored)

	auction, err := svc.CreateAuction(context.Background(), seller, vaseInput())
	require.NoError(t, err)

	require.Equal(t, models.StatusActive, stored.Status)
	require.False(t, stored.Approved)
	require.True(t, stored.Editable)
	require.Equal(t, 100.0, stored.CurrentBid)
	require.Equal(t, 10.0, stored.MinimumIncrement)
	require.Len(t, stored.BidIncrementRules, 1)
	require.Zero(t, stored.BidCount)
	require.Empty(t, stored.Participants)
	require.Equal(t, seller.Email, stored.CreatedBy)
	require.True(t, fixedNow.Equal(stored.ScheduledStart))
	require.NotEmpty(t, stored.ID)
	require.Equal(t, stored.ID, auction.ID)
}

func TestAuctionService_CreateAuction_ValidationFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		actor       models.Actor
		mutate      func(*CreateAuctionInput)
		wantErr     error
		wantMessage string
	}{
		{
			name:    "buyer_cannot_create",
			actor:   buyer,
			mutate:  func(*CreateAuctionInput) {},
			wantErr: auctionerrors.ErrForbidden,
		},
		{
			name:        "missing_subtype",
			actor:       seller,
			mutate:      func(in *CreateAuctionInput) { in.AuctionSubType = "" },
			wantErr:     auctionerrors.ErrValidation,
			wantMessage: "Auction type and sub-type are required",
		},
		{
			name:        "unknown_auction_type",
			actor:       seller,
			mutate:      func(in *CreateAuctionInput) { in.AuctionType = "dutch" },
			wantErr:     auctionerrors.ErrValidation,
			wantMessage: "Auction type must be forward or reverse",
		},
		{
			name:        "missing_product_name",
			actor:       seller,
			mutate:      func(in *CreateAuctionInput) { in.ProductName = "  " },
			wantErr:     auctionerrors.ErrValidation,
			wantMessage: "Product name is required",
		},
		{
			name:  "multilot_without_lots",
			actor: seller,
			mutate: func(in *CreateAuctionInput) {
				in.IsMultiLot = true
				in.ProductName = ""
			},
			wantErr:     auctionerrors.ErrValidation,
			wantMessage: "At least one lot is required for multi-lot auctions",
		},
		{
			name:  "multilot_incomplete_lot",
			actor: seller,
			mutate: func(in *CreateAuctionInput) {
				in.IsMultiLot = true
				in.Lots = []models.Lot{
					{Name: "A", Description: "first", Quantity: 1, StartPrice: 10},
					{Name: "B", Description: "second", Quantity: 0, StartPrice: 10},
				}
			},
			wantErr:     auctionerrors.ErrValidation,
			wantMessage: "Lot 2: name, description, quantity and start price are required",
		},
		{
			name:        "fixed_increment_not_positive",
			actor:       seller,
			mutate:      func(in *CreateAuctionInput) { in.BidIncrementRules[0].IncrementValue = 0 },
			wantErr:     auctionerrors.ErrValidation,
			wantMessage: "Minimum increment must be a positive number for fixed type",
		},
		{
			name:        "scheduled_without_start",
			actor:       seller,
			mutate:      func(in *CreateAuctionInput) { in.LaunchType = models.LaunchScheduled },
			wantErr:     auctionerrors.ErrValidation,
			wantMessage: "Scheduled start time is required for scheduled auctions",
		},
		{
			name:        "negative_start_price",
			actor:       seller,
			mutate:      func(in *CreateAuctionInput) { in.StartPrice = -1 },
			wantErr:     auctionerrors.ErrValidation,
			wantMessage: "Start price cannot be negative",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			// no repository expectations: any write fails the test
			svc, _ := newTestService(t, false)

			in := vaseInput()
			tc.mutate(&in)

			_, err := svc.CreateAuction(context.Background(), tc.actor, in)
			require.ErrorIs(t, err, tc.wantErr)
			if tc.wantMessage != "" {
				require.EqualError(t, err, tc.wantMessage)
			}
		})
	}
}

func TestAuctionService_CreateAuction_ReverseDocuments(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		docs     string
		target   float64
		wantDocs []models.RequiredDocument
		wantErr  bool
	}{
		{name: "absent", docs: "", target: 5000, wantErr: true},
		{name: "null", docs: "null", target: 5000, wantErr: true},
		{name: "not_json_string", docs: `"certificates please"`, target: 5000, wantErr: true},
		{name: "object_instead_of_array", docs: `{"name":"ISO"}`, target: 5000, wantErr: true},
		{name: "entry_missing_name", docs: `[{"name":"ISO"},{"title":"Tax"}]`, target: 5000, wantErr: true},
		{name: "entry_blank_name", docs: `[{"name":"  "}]`, target: 5000, wantErr: true},
		{name: "entry_not_object", docs: `["ISO"]`, target: 5000, wantErr: true},
		{name: "zero_target_price", docs: `[{"name":"ISO"}]`, target: 0, wantErr: true},
		{name: "raw_array", docs: `[{"name":"ISO 9001"},{"name":"Tax clearance"}]`, target: 5000, wantDocs: []models.RequiredDocument{{Name: "ISO 9001"}, {Name: "Tax clearance"}}},
		{name: "string_encoded_array", docs: `"[{\"name\":\"ISO 9001\"}]"`, target: 5000, wantDocs: []models.RequiredDocument{{Name: "ISO 9001"}}},
		{name: "empty_array", docs: `[]`, target: 5000, wantDocs: []models.RequiredDocument{}},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			svc, mockRepo := newTestService(t, false)

			in := reverseInput(tc.docs)
			in.TargetPrice = tc.target

			var stored models.Auction
			if !tc.wantErr {
				expectCreate(mockRepo, &stored)
			}

			_, err := svc.CreateAuction(context.Background(), seller, in)
			if tc.wantErr {
				require.ErrorIs(t, err, auctionerrors.ErrValidation)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.wantDocs, []models.RequiredDocument(stored.RequiredDocuments))
			require.Equal(t, 5000.0, stored.CurrentBid)
		})
	}
}

func TestAuctionService_CreateAuction_Normalization(t *testing.T) {
	t.Parallel()

	t.Run("yankee_forces_zero_fixed_increment", func(t *testing.T) {
		t.Parallel()
		svc, mockRepo := newTestService(t, false)
		var stored models.Auction
		expectCreate(mockRepo, &stored)

		in := vaseInput()
		in.AuctionSubType = models.SubTypeYankee
		in.BidIncrementType = models.IncrementPercentage
		in.BidIncrementRules = []models.IncrementRule{{IncrementValue: 250}}

		_, err := svc.CreateAuction(context.Background(), seller, in)
		require.NoError(t, err)
		require.Equal(t, models.IncrementFixed, stored.BidIncrementType)
		require.Zero(t, stored.MinimumIncrement)
		require.Empty(t, stored.BidIncrementRules)
		require.Nil(t, stored.Percent)
	})

	t.Run("percentage_sets_percent", func(t *testing.T) {
		t.Parallel()
		svc, mockRepo := newTestService(t, false)
		var stored models.Auction
		expectCreate(mockRepo, &stored)

		in := vaseInput()
		in.BidIncrementType = models.IncrementPercentage
		in.BidIncrementRules = []models.IncrementRule{{IncrementValue: 2.5}}

		_, err := svc.CreateAuction(context.Background(), seller, in)
		require.NoError(t, err)
		require.NotNil(t, stored.Percent)
		require.Equal(t, 2.5, *stored.Percent)
		require.Zero(t, stored.MinimumIncrement)
	})

	t.Run("scheduled_keeps_future_start", func(t *testing.T) {
		t.Parallel()
		svc, mockRepo := newTestService(t, false)
		var stored models.Auction
		expectCreate(mockRepo, &stored)

		start := fixedNow.Add(48 * time.Hour)
		in := vaseInput()
		in.LaunchType = models.LaunchScheduled
		in.ScheduledStart = &start

		_, err := svc.CreateAuction(context.Background(), seller, in)
		require.NoError(t, err)
		require.True(t, start.Equal(stored.ScheduledStart))
		require.Equal(t, models.StatusScheduled, stored.Status)
	})

	t.Run("description_sanitized", func(t *testing.T) {
		t.Parallel()
		svc, mockRepo := newTestService(t, false)
		var stored models.Auction
		expectCreate(mockRepo, &stored)

		in := vaseInput()
		in.ProductDescription = `<p>Blue glaze</p><script>alert(1)</script>`

		_, err := svc.CreateAuction(context.Background(), seller, in)
		require.NoError(t, err)
		require.Equal(t, "<p>Blue glaze</p>", stored.ProductDescription)
	})

	t.Run("multilot_takes_first_lot_name", func(t *testing.T) {
		t.Parallel()
		svc, mockRepo := newTestService(t, false)
		var stored models.Auction
		expectCreate(mockRepo, &stored)

		in := vaseInput()
		in.ProductName = ""
		in.IsMultiLot = true
		in.Lots = []models.Lot{{Name: "Crate of plates", Description: "12 plates", Quantity: 3, StartPrice: 40}}

		_, err := svc.CreateAuction(context.Background(), seller, in)
		require.NoError(t, err)
		require.Equal(t, "Crate of plates", stored.ProductName)
		require.Len(t, stored.Lots, 1)
	})

	t.Run("repository_failure_is_wrapped", func(t *testing.T) {
		t.Parallel()
		svc, mockRepo := newTestService(t, false)
		repoErr := errors.New("disk full")
		mockRepo.EXPECT().CreateAuction(gomock.Any(), gomock.Any()).Return(repoErr)

		_, err := svc.CreateAuction(context.Background(), seller, vaseInput())
		require.ErrorIs(t, err, repoErr)
	})
}

// expectUpdate runs the service mutation against a copy of current
func expectUpdate(mockRepo *repository.MockAuctionDB, current *models.Auction) {
	mockRepo.EXPECT().UpdateAuction(gomock.Any(), current.ID, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, mutate func(*models.Auction) error) (models.Auction, error) {
			working := *current
			if err := mutate(&working); err != nil {
				return models.Auction{}, err
			}
			*current = working
			return working, nil
		}).AnyTimes()
}

func TestAuctionService_ApproveAuction(t *testing.T) {
	t.Parallel()

	t.Run("scheduled_future_start_unchanged", func(t *testing.T) {
		t.Parallel()
		svc, mockRepo := newTestService(t, false)

		start := fixedNow.Add(time.Hour)
		stored := models.Auction{ID: "a1", LaunchType: models.LaunchScheduled, ScheduledStart: start, Status: models.StatusScheduled}
		expectUpdate(mockRepo, &stored)

		approved, err := svc.ApproveAuction(context.Background(), admin, "a1")
		require.NoError(t, err)
		require.True(t, approved.Approved)
		require.True(t, start.Equal(approved.ScheduledStart))
	})

	t.Run("immediate_twice_keeps_first_start", func(t *testing.T) {
		t.Parallel()
		svc, mockRepo := newTestService(t, false)

		stored := models.Auction{ID: "a1", LaunchType: models.LaunchImmediate, ScheduledStart: fixedNow.Add(-time.Hour)}
		expectUpdate(mockRepo, &stored)

		first, err := svc.ApproveAuction(context.Background(), admin, "a1")
		require.NoError(t, err)
		require.True(t, fixedNow.Equal(first.ScheduledStart))

		svc.now = func() time.Time { return fixedNow.Add(10 * time.Minute) }
		second, err := svc.ApproveAuction(context.Background(), admin, "a1")
		require.NoError(t, err)
		require.True(t, second.Approved)
		require.True(t, first.ScheduledStart.Equal(second.ScheduledStart))
	})

	t.Run("not_found", func(t *testing.T) {
		t.Parallel()
		svc, mockRepo := newTestService(t, false)
		mockRepo.EXPECT().UpdateAuction(gomock.Any(), "missing", gomock.Any()).Return(models.Auction{}, auctionerrors.ErrAuctionNotFound)

		_, err := svc.ApproveAuction(context.Background(), admin, "missing")
		require.ErrorIs(t, err, auctionerrors.ErrAuctionNotFound)
	})

	t.Run("seller_forbidden", func(t *testing.T) {
		t.Parallel()
		svc, _ := newTestService(t, false)

		_, err := svc.ApproveAuction(context.Background(), seller, "a1")
		require.ErrorIs(t, err, auctionerrors.ErrForbidden)
	})
}

func TestAuctionService_DeleteAuction(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		actor     models.Actor
		mockSetup func(*repository.MockAuctionDB)
		wantErr   error
	}{
		{
			name:  "admin_deletes",
			actor: admin,
			mockSetup: func(m *repository.MockAuctionDB) {
				m.EXPECT().DeleteAuction(gomock.Any(), "a1").Return(nil)
			},
		},
		{
			name:  "missing_auction",
			actor: admin,
			mockSetup: func(m *repository.MockAuctionDB) {
				m.EXPECT().DeleteAuction(gomock.Any(), "a1").Return(auctionerrors.ErrAuctionNotFound)
			},
			wantErr: auctionerrors.ErrAuctionNotFound,
		},
		{
			name:      "seller_forbidden",
			actor:     seller,
			mockSetup: func(*repository.MockAuctionDB) {},
			wantErr:   auctionerrors.ErrForbidden,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			svc, mockRepo := newTestService(t, false)
			tc.mockSetup(mockRepo)

			err := svc.DeleteAuction(context.Background(), tc.actor, "a1")
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestAuctionService_ListAuctions(t *testing.T) {
	t.Parallel()
	svc, mockRepo := newTestService(t, false)

	mockRepo.EXPECT().
		ListAuctions(gomock.Any(), repository.AuctionFilter{Category: "art", Page: 1, Limit: repository.DefaultListLimit}).
		Return([]models.Auction{{ID: "a1"}}, int64(1), nil)
	mockRepo.EXPECT().
		ListAuctions(gomock.Any(), repository.AuctionFilter{Page: 2, Limit: 3}).
		Return([]models.Auction{{ID: "a4"}, {ID: "a5"}, {ID: "a6"}}, int64(7), nil)

	page, err := svc.ListAuctions(context.Background(), repository.AuctionFilter{Category: "art"})
	require.NoError(t, err)
	require.Equal(t, Pagination{Page: 1, Limit: repository.DefaultListLimit, Total: 1, TotalPages: 1}, page.Pagination)

	page, err = svc.ListAuctions(context.Background(), repository.AuctionFilter{Page: 2, Limit: 3})
	require.NoError(t, err)
	require.Equal(t, Pagination{Page: 2, Limit: 3, Total: 7, TotalPages: 3}, page.Pagination)
	require.Len(t, page.Auctions, 3)
}

func TestAuctionService_ListListings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		actor     models.Actor
		email     string
		wantOwner string
	}{
		{name: "seller_sees_own", actor: seller, wantOwner: seller.Email},
		{name: "seller_cannot_name_another", actor: seller, email: "other@example.com", wantOwner: seller.Email},
		{name: "admin_names_seller", actor: admin, email: "other@example.com", wantOwner: "other@example.com"},
		{name: "admin_defaults_to_self", actor: admin, wantOwner: admin.Email},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			svc, mockRepo := newTestService(t, false)
			mockRepo.EXPECT().ListAuctionsByCreator(gomock.Any(), tc.wantOwner).Return([]models.Auction{}, nil)

			_, err := svc.ListListings(context.Background(), tc.actor, tc.email)
			require.NoError(t, err)
		})
	}
}

func editableListing() models.Auction {
	return models.Auction{
		ID:                "a1",
		CreatedBy:         seller.Email,
		AuctionType:       models.AuctionTypeForward,
		AuctionSubType:    "english",
		ProductName:       "Vase",
		StartPrice:        100,
		CurrentBid:        100,
		BidIncrementType:  models.IncrementFixed,
		MinimumIncrement:  10,
		BidIncrementRules: datatypes.JSONSlice[models.IncrementRule]{{IncrementValue: 10, IncrementType: models.IncrementFixed}},
		Category:          "ceramics",
		Editable:          true,
	}
}

func TestAuctionService_EditListing(t *testing.T) {
	t.Parallel()

	name := "Blue Vase"
	price := 150.0
	increment := 15.0
	duration := models.AuctionDuration{Days: 3}

	t.Run("owner_edits_mutable_fields", func(t *testing.T) {
		t.Parallel()
		svc, mockRepo := newTestService(t, false)
		stored := editableListing()
		expectUpdate(mockRepo, &stored)

		updated, err := svc.EditListing(context.Background(), seller, "a1", ListingUpdate{
			ProductName:      &name,
			StartPrice:       &price,
			MinimumIncrement: &increment,
			AuctionDuration:  &duration,
		})
		require.NoError(t, err)
		require.Equal(t, "Blue Vase", updated.ProductName)
		require.Equal(t, 150.0, updated.StartPrice)
		require.Equal(t, 150.0, updated.CurrentBid)
		require.Equal(t, 15.0, updated.MinimumIncrement)
		require.Equal(t, 15.0, updated.BidIncrementRules[0].IncrementValue)
		require.Equal(t, duration, updated.AuctionDuration.Data())
		require.Equal(t, "ceramics", updated.Category)
		require.Equal(t, seller.Email, updated.CreatedBy)
	})

	t.Run("admin_edits_any_listing", func(t *testing.T) {
		t.Parallel()
		svc, mockRepo := newTestService(t, false)
		stored := editableListing()
		expectUpdate(mockRepo, &stored)

		_, err := svc.EditListing(context.Background(), admin, "a1", ListingUpdate{ProductName: &name})
		require.NoError(t, err)
	})

	t.Run("not_editable", func(t *testing.T) {
		t.Parallel()
		svc, mockRepo := newTestService(t, false)
		stored := editableListing()
		stored.Editable = false
		expectUpdate(mockRepo, &stored)

		_, err := svc.EditListing(context.Background(), seller, "a1", ListingUpdate{ProductName: &name})
		require.ErrorIs(t, err, auctionerrors.ErrNotEditable)
		require.Equal(t, "Vase", stored.ProductName)
	})

	t.Run("other_seller_forbidden", func(t *testing.T) {
		t.Parallel()
		svc, mockRepo := newTestService(t, false)
		stored := editableListing()
		expectUpdate(mockRepo, &stored)

		other := models.Actor{UserID: "s2", Email: "other@example.com", Role: models.RoleSeller}
		_, err := svc.EditListing(context.Background(), other, "a1", ListingUpdate{ProductName: &name})
		require.ErrorIs(t, err, auctionerrors.ErrForbidden)
	})

	t.Run("yankee_rejects_increment", func(t *testing.T) {
		t.Parallel()
		svc, mockRepo := newTestService(t, false)
		stored := editableListing()
		stored.AuctionSubType = models.SubTypeYankee
		stored.MinimumIncrement = 0
		expectUpdate(mockRepo, &stored)

		_, err := svc.EditListing(context.Background(), seller, "a1", ListingUpdate{MinimumIncrement: &increment})
		require.ErrorIs(t, err, auctionerrors.ErrValidation)
		require.Zero(t, stored.MinimumIncrement)
	})

	t.Run("increment_only_editable_on_fixed_type", func(t *testing.T) {
		t.Parallel()
		percent := 5.0

		for _, incrementType := range []string{models.IncrementPercentage, models.IncrementRangeBased} {
			svc, mockRepo := newTestService(t, false)
			stored := editableListing()
			stored.BidIncrementType = incrementType
			stored.MinimumIncrement = 0
			stored.Percent = &percent
			expectUpdate(mockRepo, &stored)

			_, err := svc.EditListing(context.Background(), seller, "a1", ListingUpdate{MinimumIncrement: &increment})
			require.ErrorIs(t, err, auctionerrors.ErrValidation, incrementType)
			ve, ok := auctionerrors.AsValidation(err)
			require.True(t, ok)
			require.Equal(t, "Minimum increment can only be edited on fixed increment auctions", ve.Message)
			require.Zero(t, stored.MinimumIncrement)
		}
	})

	t.Run("negative_price_rejected_before_load", func(t *testing.T) {
		t.Parallel()
		svc, _ := newTestService(t, false)
		negative := -1.0

		_, err := svc.EditListing(context.Background(), seller, "a1", ListingUpdate{StartPrice: &negative})
		require.ErrorIs(t, err, auctionerrors.ErrValidation)
	})
}

func TestAuctionService_DeleteListing(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		actor     models.Actor
		mockSetup func(*repository.MockAuctionDB)
		wantErr   error
	}{
		{
			name:  "owner_deletes",
			actor: seller,
			mockSetup: func(m *repository.MockAuctionDB) {
				m.EXPECT().GetAuction(gomock.Any(), "a1").Return(editableListing(), nil)
				m.EXPECT().DeleteAuction(gomock.Any(), "a1").Return(nil)
			},
		},
		{
			name:  "admin_deletes",
			actor: admin,
			mockSetup: func(m *repository.MockAuctionDB) {
				m.EXPECT().GetAuction(gomock.Any(), "a1").Return(editableListing(), nil)
				m.EXPECT().DeleteAuction(gomock.Any(), "a1").Return(nil)
			},
		},
		{
			name:  "buyer_forbidden",
			actor: buyer,
			mockSetup: func(m *repository.MockAuctionDB) {
				m.EXPECT().GetAuction(gomock.Any(), "a1").Return(editableListing(), nil)
			},
			wantErr: auctionerrors.ErrForbidden,
		},
		{
			name:  "missing",
			actor: seller,
			mockSetup: func(m *repository.MockAuctionDB) {
				m.EXPECT().GetAuction(gomock.Any(), "a1").Return(models.Auction{}, auctionerrors.ErrAuctionNotFound)
			},
			wantErr: auctionerrors.ErrAuctionNotFound,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			svc, mockRepo := newTestService(t, false)
			tc.mockSetup(mockRepo)

			err := svc.DeleteListing(context.Background(), tc.actor, "a1")
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}
