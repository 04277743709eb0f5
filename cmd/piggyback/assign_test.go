package main

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMonthKey(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{
			name:  "year and month",
			input: "2025-06",
			want:  "2025-06-01",
		},
		{
			name:  "full date normalizes to first of month",
			input: "2025-06-18",
			want:  "2025-06-01",
		},
		{
			name:    "garbage input",
			input:   "june 2025",
			wantErr: true,
		},
		{
			name:    "month out of range",
			input:   "2025-13",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseMonthKey(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseMonthKey_EmptyDefaultsToCurrentMonth(t *testing.T) {
	got, err := parseMonthKey("")
	require.NoError(t, err)
	assert.Regexp(t, `^\d{4}-\d{2}-01$`, got)
}

func TestDollarsFlagToCents(t *testing.T) {
	assert.Equal(t, int64(80000), dollarsFlagToCents(800))
	assert.Equal(t, int64(123456), dollarsFlagToCents(1234.56))
	assert.Equal(t, int64(100), dollarsFlagToCents(0.995))
	assert.Equal(t, int64(0), dollarsFlagToCents(0))
}

func TestAssignCmd(t *testing.T) {
	cmd := assignCmd()
	require.NotNil(t, cmd)

	names := make(map[string]*cobra.Command)
	for _, subcmd := range cmd.Commands() {
		names[subcmd.Name()] = subcmd
	}

	for _, want := range []string{"category", "goal", "asset", "list"} {
		assert.Contains(t, names, want, "%s subcommand should exist", want)
	}

	flag := names["category"].Flag("amount")
	require.NotNil(t, flag, "amount flag should exist")
}

func TestSummaryCmdDefaults(t *testing.T) {
	cmd := summaryCmd()

	flag := cmd.Flag("period")
	require.NotNil(t, flag)
	assert.Equal(t, "monthly", flag.DefValue)

	flag = cmd.Flag("methodology")
	require.NotNil(t, flag)
	assert.Equal(t, "zero-based", flag.DefValue)

	flag = cmd.Flag("carryover")
	require.NotNil(t, flag)
	assert.Equal(t, "rollover", flag.DefValue)
}
