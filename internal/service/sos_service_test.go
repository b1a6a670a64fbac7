package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utp-plus/report-service/internal/clock"
	"github.com/utp-plus/report-service/internal/events"
)

func TestSOSTriggerBroadcasts(t *testing.T) {
	clk := clock.NewFake(time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC))
	bus := &recordingDispatcher{}
	svc := NewSOSService(bus, clk)

	user := testUser("u1")
	user.Campus = "Lima Centro"
	zone := "Estacionamiento"

	alert, err := svc.Trigger(context.Background(), user, SOSInput{Zone: &zone})
	require.NoError(t, err)
	assert.NotEmpty(t, alert.ID)
	assert.Equal(t, "Lima Centro", alert.Campus)
	assert.Equal(t, user.ID, alert.TriggeredBy.UserID)
	assert.Equal(t, clk.Now(), alert.CreatedAt)

	published := bus.byType(events.EventSOSTriggered)
	require.Len(t, published, 1)
	payload, ok := published[0].Payload.(events.SOSPayload)
	require.True(t, ok)
	assert.Equal(t, "Lima Centro", payload.Campus)
	require.NotNil(t, payload.Zone)
	assert.Equal(t, "Estacionamiento", *payload.Zone)
}

func TestSOSTriggerRequiresUser(t *testing.T) {
	clk := clock.NewFake(time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC))
	svc := NewSOSService(&recordingDispatcher{}, clk)

	_, err := svc.Trigger(context.Background(), nil, SOSInput{})
	assert.Error(t, err)
}

func TestSOSTriggerCampusWideWhenZoneOmitted(t *testing.T) {
	clk := clock.NewFake(time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC))
	bus := &recordingDispatcher{}
	svc := NewSOSService(bus, clk)

	alert, err := svc.Trigger(context.Background(), testUser("u2"), SOSInput{})
	require.NoError(t, err)
	assert.Nil(t, alert.Zone)
	require.Len(t, bus.byType(events.EventSOSTriggered), 1)
}
