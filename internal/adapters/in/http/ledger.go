package http

import (
	"net/http"

	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// partyParam reads the optional party_type and party_id pair admins use to
// look at someone else's ledger.
func partyParam(c echo.Context) (*kernel.Party, error) {
	partyType, partyID := c.QueryParam("party_type"), c.QueryParam("party_id")
	if partyType == "" && partyID == "" {
		return nil, nil
	}
	if partyType == "" || partyID == "" {
		return nil, errs.NewValueIsRequiredError("party_type and party_id go together")
	}
	t, err := kernel.ParsePartyType(partyType)
	if err != nil {
		return nil, err
	}
	id, err := kernel.UUIDFromString(partyID)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("party_id", err)
	}
	party, err := kernel.NewParty(t, id)
	if err != nil {
		return nil, err
	}
	return &party, nil
}

// GetBalance handles GET /api/v1/balance.
func (s *Server) GetBalance(c echo.Context) error {
	party, err := partyParam(c)
	if err != nil {
		return writeError(c, err)
	}
	query, err := queries.NewGetBalanceQuery(actorFrom(c), party)
	if err != nil {
		return writeError(c, err)
	}
	balance, err := s.handlers.GetBalance.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, BalanceResponse{
		PartyType: balance.Party.Type().String(),
		PartyID:   balance.Party.ID().String(),
		Available: balance.Available,
		Pending:   balance.Pending,
	})
}

// ListLedgerEntries handles GET /api/v1/ledger/entries.
func (s *Server) ListLedgerEntries(c echo.Context) error {
	party, err := partyParam(c)
	if err != nil {
		return writeError(c, err)
	}
	limit, err := intQueryParam(c, "limit")
	if err != nil {
		return writeError(c, err)
	}
	offset, err := intQueryParam(c, "offset")
	if err != nil {
		return writeError(c, err)
	}

	query, err := queries.NewListLedgerEntriesQuery(actorFrom(c), party, limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	views, err := s.handlers.ListLedgerEntries.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err)
	}
	resp := make([]LedgerEntryResponse, len(views))
	for i, v := range views {
		resp[i] = toLedgerViewResponse(v)
	}
	return c.JSON(http.StatusOK, resp)
}
