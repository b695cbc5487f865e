package metrics

import (
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordHTTPRequest(t *testing.T) {
	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/access/:id", "402"))

	RecordHTTPRequest("GET", "/access/:id", http.StatusPaymentRequired, 15*time.Millisecond)

	after := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/access/:id", "402"))
	assert.Equal(t, before+1, after)
}

func TestRecordAccessCheck(t *testing.T) {
	tests := []string{ResultUnlocked, ResultPaymentRequired, ResultNotFound, ResultError}

	for _, result := range tests {
		t.Run(result, func(t *testing.T) {
			before := testutil.ToFloat64(AccessChecks.WithLabelValues(result))
			RecordAccessCheck(result)
			assert.Equal(t, before+1, testutil.ToFloat64(AccessChecks.WithLabelValues(result)))
		})
	}
}

func TestRecordGrant(t *testing.T) {
	issued := testutil.ToFloat64(GrantsIssued)
	rejected := testutil.ToFloat64(GrantsRejected)

	RecordGrant(true)
	RecordGrant(false)
	RecordGrant(false)

	assert.Equal(t, issued+1, testutil.ToFloat64(GrantsIssued))
	assert.Equal(t, rejected+2, testutil.ToFloat64(GrantsRejected))
}

func TestRecordContentCreated(t *testing.T) {
	before := testutil.ToFloat64(ContentCreated.WithLabelValues("VIDEO"))

	RecordContentCreated("VIDEO")

	assert.Equal(t, before+1, testutil.ToFloat64(ContentCreated.WithLabelValues("VIDEO")))
}
