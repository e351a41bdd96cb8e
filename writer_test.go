package ssepoll

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWriteEvent(t *testing.T) {
	tests := []struct {
		msg      string
		event    Event
		expected string
	}{
		{
			msg:      "single line",
			event:    Event{ID: 42, Event: "single", Data: "body"},
			expected: "id: 42\nevent: single\ndata: body\n\n",
		},
		{
			msg:      "multi line",
			event:    Event{ID: 1, Event: "multi", Data: "line1\nline2"},
			expected: "id: 1\nevent: multi\ndata: line1\ndata: line2\n\n",
		},
		{
			msg:      "empty payload",
			event:    Event{ID: 7, Event: "empty", Data: ""},
			expected: "id: 7\nevent: empty\ndata: \n\n",
		},
	}

	for _, test := range tests {
		t.Run(test.msg, func(t *testing.T) {
			var buf bytes.Buffer
			err := writeEvent(&buf, &test.event)
			assert.NoError(t, err)
			assert.Equal(t, test.expected, buf.String())
		})
	}
}

func TestWriteComment(t *testing.T) {
	var buf bytes.Buffer
	err := writeComment(&buf, "keep-alive-token")
	assert.NoError(t, err)
	assert.Equal(t, ": keep-alive-token\n\n", buf.String())
}

func TestWriteRetry(t *testing.T) {
	var buf bytes.Buffer
	err := writeRetry(&buf, 2*time.Second)
	assert.NoError(t, err)
	assert.Equal(t, "retry: 2000\n", buf.String())
}
