package nodes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectSubIntent(t *testing.T) {
	assert.Equal(t, SubIntentFAQ, DetectSubIntent("when do I get my refund?"))
	assert.Equal(t, SubIntentSchedule, DetectSubIntent("can you schedule a call for me"))
	assert.Equal(t, SubIntentSchedule, DetectSubIntent("I want to speak to a human"))
	assert.Equal(t, SubIntentTicket, DetectSubIntent("my card machine is not working"))
	assert.Equal(t, SubIntentTicket, DetectSubIntent("I was charged twice for one sale"))
	assert.Equal(t, SubIntentGeneral, DetectSubIntent("hello there"))
}

func TestDetectSubIntentScheduleWinsOverTicket(t *testing.T) {
	// A customer asking for a call about a problem wants the call.
	got := DetectSubIntent("my terminal is broken, please schedule a call")
	assert.Equal(t, SubIntentSchedule, got)
}

func TestInferPriority(t *testing.T) {
	assert.Equal(t, "urgent", inferPriority("fix this ASAP please"))
	assert.Equal(t, "high", inferPriority("I cannot access my account"))
	assert.Equal(t, "normal", inferPriority("the receipt logo looks wrong"))
}

func TestDateTimeExtraction(t *testing.T) {
	msg := "schedule a call on 2026-09-02 at 14:30 please"
	assert.Equal(t, "2026-09-02", dateRe.FindString(msg))
	assert.Equal(t, "14:30", timeRe.FindString(msg))

	assert.Empty(t, dateRe.FindString("schedule a call tomorrow"))
}
