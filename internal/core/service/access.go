package service

import (
	"github.com/myenergy/tracker/internal/core/aggregator"
	"github.com/myenergy/tracker/internal/core/domain"
)

// visibleClient returns the client when the viewer may see it.
func visibleClient(doc *domain.Document, viewer domain.User, clientID string) (domain.Client, error) {
	c, ok := doc.ClientByID(clientID)
	if !ok {
		return domain.Client{}, domain.ErrClientNotFound
	}
	if !viewer.IsAdmin() && c.UserID != viewer.ID {
		return domain.Client{}, domain.ErrForbidden
	}
	return c, nil
}

// visibleHouse returns the house when it belongs to a client the viewer may
// see. Admins also see houses whose client no longer exists.
func visibleHouse(doc *domain.Document, viewer domain.User, houseID string) (domain.House, error) {
	h, ok := doc.HouseByID(houseID)
	if !ok {
		return domain.House{}, domain.ErrHouseNotFound
	}
	if viewer.IsAdmin() {
		return h, nil
	}
	c, ok := doc.ClientByID(h.ClientID)
	if !ok || c.UserID != viewer.ID {
		return domain.House{}, domain.ErrForbidden
	}
	return h, nil
}

func checkFilter(doc *domain.Document, viewer domain.User, f aggregator.Filter) error {
	if f.ClientSelected() {
		if _, err := visibleClient(doc, viewer, f.ClientID); err != nil {
			return err
		}
	}
	if f.HouseSelected() {
		if _, err := visibleHouse(doc, viewer, f.HouseID); err != nil {
			return err
		}
	}
	return nil
}
