package cli

import (
	"testing"

	"folio/internal/config"
	"folio/internal/core"
)

func TestHotelFromConfigOverlaysDefaults(t *testing.T) {
	cfg := &config.Config{HotelName: "Sea View Inn", HotelGSTIN: "32AAAAA0000A1Z5"}
	h := HotelFromConfig(cfg)

	def := core.DefaultHotel()
	if h.Name != "Sea View Inn" || h.GSTIN != "32AAAAA0000A1Z5" {
		t.Errorf("configured fields not applied: %+v", h)
	}
	if h.Address != def.Address || h.Phone != def.Phone || h.Email != def.Email {
		t.Errorf("unset fields should keep defaults: %+v", h)
	}
}

func TestSetupLoggerLevel(t *testing.T) {
	logger := SetupLogger("debug")
	if logger.Component() != "app" {
		t.Errorf("component = %q", logger.Component())
	}
}
