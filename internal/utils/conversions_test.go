package utils_test

import (
	"testing"

	"github.com/jrsteele09/captal-web/internal/utils"
	"github.com/stretchr/testify/require"
)

func TestStringList(t *testing.T) {
	require.Equal(t, []string{"admins"}, utils.StringList("admins"))
	require.Equal(t, []string{"a", "b"}, utils.StringList([]string{"a", "b"}))
	require.Equal(t, []string{"a", "c"}, utils.StringList([]any{"a", 2, "c"}))
	require.Nil(t, utils.StringList(""))
	require.Nil(t, utils.StringList(42))
	require.Nil(t, utils.StringList(nil))
}
