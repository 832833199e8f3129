package fiber

import (
	"context"
	"strconv"

	"attribution-analytics-service/internal/analytics/core/domain"
	"attribution-analytics-service/internal/analytics/core/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

type QueryAnalyticsUseCase interface {
	Overview(ctx context.Context) (*domain.Overview, error)
	Timeline(ctx context.Context, in usecase.TimelineInput) ([]domain.TimelinePoint, error)
	Segments(ctx context.Context, in usecase.SegmentInput) ([]domain.SegmentTotal, error)
	Details(ctx context.Context, in usecase.DetailsInput) (*domain.DayDetails, error)
	LTV(ctx context.Context, in usecase.LTVInput) (*domain.LTVReport, error)
	LTVOverview(ctx context.Context) (*domain.LTVOverview, error)
}

type AnalyticsHandler struct {
	uc QueryAnalyticsUseCase
}

func NewAnalyticsHandler(uc QueryAnalyticsUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

// Register mounts the read endpoints on r, normally the /api group.
func (h *AnalyticsHandler) Register(r fiber.Router) {
	r.Get("/overview", h.GetOverview)
	r.Get("/timeline", h.GetTimeline)
	r.Get("/country", h.GetCountry)
	r.Get("/device", h.GetDevice)
	r.Get("/details", h.GetDetails)
	r.Get("/ltv", h.GetLTV)
	r.Get("/ltv/overview", h.GetLTVOverview)
}

// optionalQuery tells an absent parameter (nil) from a present but empty one.
func optionalQuery(c *fiber.Ctx, key string) *string {
	if !c.Context().QueryArgs().Has(key) {
		return nil
	}
	v := utils.CopyString(c.Query(key))
	return &v
}

// GetOverview godoc
// @Summary Dataset overview
// @Description Distinct users, events, device categories and purchase revenue across the whole store
// @Tags Analytics
// @Produce json
// @Success 200 {object} Envelope{data=OverviewResponse}
// @Failure 404 {object} Envelope
// @Failure 500 {object} Envelope
// @Failure 503 {object} Envelope
// @Router /api/overview [get]
func (h *AnalyticsHandler) GetOverview(c *fiber.Ctx) error {
	res, err := h.uc.Overview(c.Context())
	if err != nil {
		return writeError(c, err)
	}

	return Success(c, OverviewResponse{
		UserCount:    res.UserCount,
		EventCount:   res.EventCount,
		DeviceCount:  res.DeviceCount,
		TotalRevenue: res.TotalRevenue,
	}, "overview fetched")
}

// GetTimeline godoc
// @Summary Daily timeline
// @Description Per-day rollups, newest first. dateRange (start|end or a single date) returns the full bounded set; otherwise the most recent N days.
// @Tags Analytics
// @Produce json
// @Param dateRange query string false "Date or range, e.g. 2024-01-01|2024-01-31"
// @Param days query int false "Most recent N days (default 30)"
// @Success 200 {object} Envelope{data=TimelineResponse}
// @Failure 400 {object} Envelope
// @Failure 500 {object} Envelope
// @Router /api/timeline [get]
func (h *AnalyticsHandler) GetTimeline(c *fiber.Ctx) error {
	in := usecase.TimelineInput{DateRange: optionalQuery(c, "dateRange")}

	if raw := optionalQuery(c, "days"); raw != nil && in.DateRange == nil {
		days, err := strconv.Atoi(*raw)
		if err != nil {
			return writeError(c, domain.NewValidationError("days", *raw, "must be an integer"))
		}
		in.Days = &days
	}

	points, err := h.uc.Timeline(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}

	return Success(c, newTimelineResponse(points), "timeline fetched")
}

// GetCountry godoc
// @Summary Totals per country
// @Description Users and revenue per country, highest revenue first
// @Tags Analytics
// @Produce json
// @Param date query string false "Date or range, e.g. 2024-01-01|2024-01-31"
// @Success 200 {object} Envelope{data=CountryListResponse}
// @Failure 500 {object} Envelope
// @Router /api/country [get]
func (h *AnalyticsHandler) GetCountry(c *fiber.Ctx) error {
	totals, err := h.uc.Segments(c.Context(), usecase.SegmentInput{
		Segment: usecase.SegmentCountry,
		Date:    optionalQuery(c, "date"),
	})
	if err != nil {
		return writeError(c, err)
	}

	return Success(c, newCountryListResponse(totals), "country totals fetched")
}

// GetDevice godoc
// @Summary Totals per device category
// @Description Users and revenue per device category, highest revenue first
// @Tags Analytics
// @Produce json
// @Param date query string false "Date or range, e.g. 2024-01-01|2024-01-31"
// @Success 200 {object} Envelope{data=DeviceListResponse}
// @Failure 500 {object} Envelope
// @Router /api/device [get]
func (h *AnalyticsHandler) GetDevice(c *fiber.Ctx) error {
	totals, err := h.uc.Segments(c.Context(), usecase.SegmentInput{
		Segment: usecase.SegmentDevice,
		Date:    optionalQuery(c, "date"),
	})
	if err != nil {
		return writeError(c, err)
	}

	return Success(c, newDeviceListResponse(totals), "device totals fetched")
}

// GetDetails godoc
// @Summary Breakdown for one day
// @Description Distinct users per country and device plus purchase revenue for a single date
// @Tags Analytics
// @Produce json
// @Param date query string true "Date, e.g. 2024-01-01"
// @Success 200 {object} Envelope{data=DetailsResponse}
// @Failure 400 {object} Envelope
// @Failure 500 {object} Envelope
// @Router /api/details [get]
func (h *AnalyticsHandler) GetDetails(c *fiber.Ctx) error {
	res, err := h.uc.Details(c.Context(), usecase.DetailsInput{Date: optionalQuery(c, "date")})
	if err != nil {
		return writeError(c, err)
	}

	return Success(c, newDetailsResponse(res), "details fetched")
}

// GetLTV godoc
// @Summary Lifetime value
// @Description Per-user LTV, or LTV aggregated by country, device or first purchase date
// @Tags LTV
// @Produce json
// @Param groupBy query string false "country | device | date (empty for per-user rows)"
// @Param window query string false "1d | 7d | 14d | 30d | 60d | 90d | total (default total)"
// @Success 200 {object} Envelope{data=LTVResponse}
// @Failure 400 {object} Envelope
// @Failure 500 {object} Envelope
// @Router /api/ltv [get]
func (h *AnalyticsHandler) GetLTV(c *fiber.Ctx) error {
	report, err := h.uc.LTV(c.Context(), usecase.LTVInput{
		GroupBy: utils.CopyString(c.Query("groupBy")),
		Window:  utils.CopyString(c.Query("window")),
	})
	if err != nil {
		return writeError(c, err)
	}

	return Success(c, newLTVResponse(report), "ltv fetched")
}

// GetLTVOverview godoc
// @Summary Lifetime value overview
// @Description Dataset-wide LTV totals and per-window averages
// @Tags LTV
// @Produce json
// @Success 200 {object} Envelope{data=LTVOverviewResponse}
// @Failure 404 {object} Envelope
// @Failure 500 {object} Envelope
// @Router /api/ltv/overview [get]
func (h *AnalyticsHandler) GetLTVOverview(c *fiber.Ctx) error {
	res, err := h.uc.LTVOverview(c.Context())
	if err != nil {
		return writeError(c, err)
	}

	return Success(c, newLTVOverviewResponse(res), "ltv overview fetched")
}
