package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/practicekit/internal/question"
)

func TestParseVariant(t *testing.T) {
	tests := []struct {
		in   string
		want question.Variant
	}{
		{"default", question.VariantDefault},
		{"fraction", question.VariantFraction},
		{" Coordinate ", question.VariantCoordinate},
		{"table", question.VariantTable},
	}
	for _, tt := range tests {
		got, err := parseVariant(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}

	for _, bad := range []string{"", "polar", "fractions"} {
		_, err := parseVariant(bad)
		assert.Error(t, err, bad)
	}
}

func TestCheckCommandRejectsUnknownVariant(t *testing.T) {
	cmd := checkCmd
	require.NoError(t, cmd.Flags().Set("answer", "1/2"))
	require.NoError(t, cmd.Flags().Set("canonical", "0.5"))
	require.NoError(t, cmd.Flags().Set("variant", "polar"))
	t.Cleanup(func() { _ = cmd.Flags().Set("variant", "default") })

	err := cmd.RunE(cmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown variant")
}
