package property

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	audithandler "propertyguard/internal/audit/handler"
	compliancehandler "propertyguard/internal/compliance/handler"
	compliancemodels "propertyguard/internal/compliance/models"
	complianceservice "propertyguard/internal/compliance/service"
	gapstore "propertyguard/internal/compliance/store/gap"
	itemstore "propertyguard/internal/compliance/store/item"
	councilhandler "propertyguard/internal/council/handler"
	councilservice "propertyguard/internal/council/service"
	councilstore "propertyguard/internal/council/store"
	documentstore "propertyguard/internal/council/store/document"
	municipalitystore "propertyguard/internal/council/store/municipality"
	"propertyguard/internal/platform/middleware"
	propertyhandler "propertyguard/internal/property/handler"
	propertyservice "propertyguard/internal/property/service"
	propertystore "propertyguard/internal/property/store/property"
	responsibilitystore "propertyguard/internal/property/store/responsibility"
	id "propertyguard/pkg/domain"
	"propertyguard/pkg/platform/audit/publisher"
	auditmemory "propertyguard/pkg/platform/audit/store/memory"
	"propertyguard/pkg/platform/middleware/requesttime"
	"propertyguard/pkg/testutil"
)

// stack is the whole service on memory stores, wired the same way main wires
// it, minus the backing infrastructure. The gap store stays reachable so
// tests can plant the drift that gap detection exists to catch.
type stack struct {
	router http.Handler
	gaps   *gapstore.InMemory
}

func newStack(t *testing.T) *stack {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	ps := propertystore.NewInMemory()
	responsibilities := responsibilitystore.NewInMemory()
	items := itemstore.NewInMemory()
	gaps := gapstore.NewInMemory()
	documents := documentstore.NewInMemory()
	municipalities := municipalitystore.NewInMemory()
	require.NoError(t, councilstore.SeedMunicipalities(context.Background(), municipalities))
	auditStore := auditmemory.NewInMemoryStore()
	auditPub := publisher.NewPublisher(auditStore, publisher.WithLogger(logger))

	compliance := complianceservice.NewComplianceService(items, gaps, ps,
		complianceservice.WithLogger(logger),
		complianceservice.WithAuditPublisher(auditPub),
	)
	council := councilservice.NewCouncilService(documents, municipalities, ps,
		councilservice.WithLogger(logger),
		councilservice.WithAuditPublisher(auditPub),
	)
	properties := propertyservice.NewPropertyService(ps, responsibilities, compliance, council,
		propertyservice.WithLogger(logger),
		propertyservice.WithAuditPublisher(auditPub),
	)

	r := chi.NewRouter()
	r.Use(middleware.RequestID, requesttime.Middleware)
	r.Route("/api", func(api chi.Router) {
		propertyhandler.New(properties, logger).Register(api)
		compliancehandler.New(compliance, logger).Register(api)
		councilhandler.New(council, logger).Register(api)
		audithandler.New(auditStore, logger).Register(api)
	})

	return &stack{router: r, gaps: gaps}
}

// TestPropertyComplianceLifecycle walks one property from registration
// through certification, gap resolution and council import, and checks the
// audit trail recorded the whole journey.
func TestPropertyComplianceLifecycle(t *testing.T) {
	env := newStack(t)

	userID := uuid.NewString()
	var propertyID, itemID, gapID string

	testutil.Given(t, "a sectional title apartment on the top floor", func(t *testing.T) {
		rr := testutil.DoRequest(env.router, testutil.NewJSONRequest(t, http.MethodPost, "/api/enhanced-properties", map[string]any{
			"user_id":             userID,
			"name":                "Sea Point Heights 701",
			"address":             "701 Sea Point Heights, 12 Loop Street, Cape Town",
			"property_type":       "sectional_title_apartment",
			"ownership_type":      "sectional_title",
			"floor_level":         "top_floor",
			"unit_number":         "701",
			"body_corporate_name": "Sea Point Heights Body Corporate",
		}))
		testutil.AssertStatus(t, rr, http.StatusCreated)

		resp := testutil.UnmarshalResponse[propertyhandler.CreateResponse](t, rr)
		require.True(t, resp.Success)
		// Four sectional title requirements plus the top-floor roof access one.
		assert.Equal(t, 5, resp.ComplianceItemsCreated)
		propertyID = resp.PropertyID
	})
	require.NotEmpty(t, propertyID, "creation must succeed before the rest of the lifecycle")

	testutil.Then(t, "seeding covers every requirement, so there are no gaps and the score is zero", func(t *testing.T) {
		rr := testutil.DoRequest(env.router, testutil.NewRequest(t, http.MethodGet, "/api/enhanced-properties/"+propertyID))
		testutil.AssertStatusOK(t, rr)

		detail := testutil.UnmarshalResponse[propertyhandler.DetailResponse](t, rr)
		assert.Zero(t, detail.Property.DocumentationScore)
		require.Len(t, detail.ComplianceItems, 5)
		assert.Empty(t, detail.DocumentationGaps)

		for _, item := range detail.ComplianceItems {
			assert.False(t, item.IsCompliant)
			if item.Name == "Unit Electrical COC" {
				itemID = item.ID
				assert.Equal(t, "Owner", item.ResponsibleParty)
			}
		}
		require.NotEmpty(t, itemID)
	})

	testutil.When(t, "the unit electrical certificate is registered", func(t *testing.T) {
		certificate := "COC-2025-04471"
		compliant := true
		rr := testutil.DoRequest(env.router, testutil.NewJSONRequest(t, http.MethodPut,
			"/api/enhanced-properties/"+propertyID+"/compliance-items/"+itemID,
			compliancehandler.UpdateItemRequest{
				IsCompliant:       &compliant,
				CertificateNumber: &certificate,
			}))
		testutil.AssertStatusOK(t, rr)

		resp := testutil.UnmarshalResponse[compliancehandler.MutationResponse](t, rr)
		assert.Equal(t, 20.0, resp.NewDocumentationScore, "one of five requirements compliant")
	})

	testutil.When(t, "a structural gap from item drift is resolved", func(t *testing.T) {
		// Plant the drift gap detection would have recorded: the shared
		// structural sign-off has no item row.
		pid, err := id.ParsePropertyID(propertyID)
		require.NoError(t, err)
		gap := compliancemodels.NewMissingComplianceGap(
			id.GapID(uuid.New()),
			pid,
			"Building Structural",
			"structural",
			compliancemodels.GapSeverityMedium,
			time.Now(),
		)
		require.NoError(t, env.gaps.CreateBatch(context.Background(), []*compliancemodels.DocumentationGap{gap}))
		gapID = gap.ID.String()

		rr := testutil.DoRequest(env.router, testutil.NewRequest(t, http.MethodGet, "/api/enhanced-properties/"+propertyID))
		testutil.AssertStatusOK(t, rr)
		detail := testutil.UnmarshalResponse[propertyhandler.DetailResponse](t, rr)
		require.Len(t, detail.DocumentationGaps, 1)
		assert.Equal(t, "Missing Building Structural for structural compliance", detail.DocumentationGaps[0].Description)
		assert.Equal(t, "medium", detail.DocumentationGaps[0].Severity, "body corporate requirements gap as medium")

		rr = testutil.DoRequest(env.router, testutil.NewJSONRequest(t, http.MethodPut,
			"/api/enhanced-properties/"+propertyID+"/documentation-gaps/"+gapID+"/resolve",
			compliancehandler.ResolveGapRequest{
				ResolutionNotes: "Structural engineer report filed with the body corporate",
			}))
		testutil.AssertStatusOK(t, rr)

		resp := testutil.UnmarshalResponse[compliancehandler.MutationResponse](t, rr)
		assert.Equal(t, 20.0, resp.NewDocumentationScore,
			"resolving a gap does not change item compliance, so the score holds")

		rr = testutil.DoRequest(env.router, testutil.NewRequest(t, http.MethodGet, "/api/enhanced-properties/"+propertyID))
		testutil.AssertStatusOK(t, rr)
		detail = testutil.UnmarshalResponse[propertyhandler.DetailResponse](t, rr)
		assert.Empty(t, detail.DocumentationGaps, "resolved gaps leave the detail view")
	})

	testutil.When(t, "the geyser maintenance split is recorded", func(t *testing.T) {
		rr := testutil.DoRequest(env.router, testutil.NewJSONRequest(t, http.MethodPost,
			"/api/enhanced-properties/"+propertyID+"/shared-responsibilities",
			map[string]any{
				"area_or_system":            "Geyser and hot water system",
				"individual_percentage":     50,
				"body_corporate_percentage": 50,
				"insurance_provider":        "Santam",
			}))
		testutil.AssertStatusOK(t, rr)
	})

	testutil.When(t, "council records are imported", func(t *testing.T) {
		rr := testutil.DoRequest(env.router, testutil.NewJSONRequest(t, http.MethodPost,
			"/api/enhanced-properties/"+propertyID+"/council-import",
			map[string]string{"municipality": "City of Cape Town"}))
		testutil.AssertStatusOK(t, rr)
		testutil.AssertJSONContains(t, rr, "documents_imported", 2.0)
	})

	testutil.Then(t, "the score report reflects the whole walk", func(t *testing.T) {
		rr := testutil.DoRequest(env.router, testutil.NewRequest(t, http.MethodGet,
			"/api/enhanced-properties/"+propertyID+"/documentation-score"))
		testutil.AssertStatusOK(t, rr)

		report := testutil.UnmarshalResponse[compliancehandler.ScoreResponse](t, rr)
		assert.Equal(t, 20.0, report.DocumentationScore)
		assert.Equal(t, 5, report.ComplianceBreakdown.TotalItems)
		assert.Equal(t, 1, report.ComplianceBreakdown.CompliantItems)
		assert.Equal(t, 20.0, report.ComplianceBreakdown.CompliancePercentage)
		assert.Equal(t, 1, report.GapsBreakdown.TotalGaps)
		assert.Equal(t, 1, report.GapsBreakdown.ResolvedGaps)
		assert.Equal(t, 100.0, report.GapsBreakdown.ResolutionPercentage)
		assert.True(t, report.CouncilDataImported)
	})

	testutil.Then(t, "the audit trail tells the property's story in order", func(t *testing.T) {
		rr := testutil.DoRequest(env.router, testutil.NewRequest(t, http.MethodGet,
			"/api/enhanced-properties/"+propertyID+"/audit-events"))
		testutil.AssertStatusOK(t, rr)

		trail := testutil.UnmarshalResponse[audithandler.TrailResponse](t, rr)
		actions := make([]string, 0, len(trail.Events))
		for _, event := range trail.Events {
			actions = append(actions, event.Action)
			assert.Equal(t, propertyID, event.PropertyID)
			assert.NotEmpty(t, event.RequestID)
		}
		assert.Equal(t, []string{
			"property_created",
			"compliance_item_updated",
			"documentation_gap_resolved",
			"shared_responsibility_added",
			"council_data_imported",
		}, actions)

		require.NotEmpty(t, trail.Events)
		created := trail.Events[0]
		require.NotNil(t, created.UserID, "creation carries the acting user")
		assert.Equal(t, userID, *created.UserID)
	})

	testutil.Then(t, "the recent events feed ends with the latest activity", func(t *testing.T) {
		rr := testutil.DoRequest(env.router, testutil.NewRequest(t, http.MethodGet, "/api/audit-events?limit=2"))
		testutil.AssertStatusOK(t, rr)

		feed := testutil.UnmarshalResponse[audithandler.TrailResponse](t, rr)
		require.Equal(t, 2, feed.Count)
		assert.Equal(t, "shared_responsibility_added", feed.Events[0].Action)
		assert.Equal(t, "council_data_imported", feed.Events[1].Action)
	})
}

// TestScoreIsScopedToTheProperty guards against one property's certificates
// bleeding into another's score.
func TestScoreIsScopedToTheProperty(t *testing.T) {
	env := newStack(t)

	createProperty := func(name string) string {
		rr := testutil.DoRequest(env.router, testutil.NewJSONRequest(t, http.MethodPost, "/api/enhanced-properties", map[string]any{
			"name":           name,
			"address":        "45 Beach Road, Cape Town",
			"property_type":  "freestanding_house",
			"ownership_type": "individual",
		}))
		testutil.AssertStatus(t, rr, http.StatusCreated)
		return testutil.UnmarshalResponse[propertyhandler.CreateResponse](t, rr).PropertyID
	}

	first := createProperty("Beach Road 45")
	second := createProperty("Beach Road 47")

	rr := testutil.DoRequest(env.router, testutil.NewRequest(t, http.MethodGet, "/api/enhanced-properties/"+first))
	testutil.AssertStatusOK(t, rr)
	detail := testutil.UnmarshalResponse[propertyhandler.DetailResponse](t, rr)
	require.NotEmpty(t, detail.ComplianceItems)

	compliant := true
	rr = testutil.DoRequest(env.router, testutil.NewJSONRequest(t, http.MethodPut,
		"/api/enhanced-properties/"+first+"/compliance-items/"+detail.ComplianceItems[0].ID,
		compliancehandler.UpdateItemRequest{IsCompliant: &compliant}))
	testutil.AssertStatusOK(t, rr)

	rr = testutil.DoRequest(env.router, testutil.NewRequest(t, http.MethodGet,
		"/api/enhanced-properties/"+second+"/documentation-score"))
	testutil.AssertStatusOK(t, rr)
	report := testutil.UnmarshalResponse[compliancehandler.ScoreResponse](t, rr)
	assert.Zero(t, report.DocumentationScore, "the neighbour's certificate must not count here")
	assert.Zero(t, report.ComplianceBreakdown.CompliantItems)
}
