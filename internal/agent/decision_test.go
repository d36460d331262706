package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStepDecision(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     *StepDecision
		wantErr  bool
	}{
		{
			name:     "navigate",
			response: `{"action":"navigate","url":"http://localhost:3344/text-box"}`,
			want:     &StepDecision{Action: "navigate", URL: "http://localhost:3344/text-box"},
		},
		{
			name:     "fill",
			response: `{"action":"fill","selector":"#userName","value":"Alex Morgan"}`,
			want:     &StepDecision{Action: "fill", Selector: "#userName", Value: "Alex Morgan"},
		},
		{
			name: "fenced click",
			response: "```json\n" +
				`{"action":"click","selector":"#submit"}` +
				"\n```",
			want: &StepDecision{Action: "click", Selector: "#submit"},
		},
		{
			name:     "done with summary",
			response: `{"action":"done","summary":"form submitted and output verified"}`,
			want:     &StepDecision{Action: "done", Summary: "form submitted and output verified"},
		},
		{
			name:     "fail",
			response: `{"action":"fail","summary":"submit button never appeared"}`,
			want:     &StepDecision{Action: "fail", Summary: "submit button never appeared"},
		},
		{
			name:     "navigate without url",
			response: `{"action":"navigate"}`,
			wantErr:  true,
		},
		{
			name:     "click without selector",
			response: `{"action":"click"}`,
			wantErr:  true,
		},
		{
			name:     "unknown action",
			response: `{"action":"scroll","selector":"#thing"}`,
			wantErr:  true,
		},
		{
			name:     "prose response",
			response: "Sure! I will click the button now.",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStepDecision(tt.response)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
