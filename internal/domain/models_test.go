package domain

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExclusionPolicy(t *testing.T) {
	p := ExclusionPolicy{
		Subreddits: []string{"AskReddit"},
		Keywords:   []string{"personal"},
	}

	assert.True(t, p.ExcludesSubreddit("askreddit"))
	assert.True(t, p.ExcludesSubreddit("ASKREDDIT"))
	assert.False(t, p.ExcludesSubreddit("golang"))

	assert.True(t, p.ExcludesBody("this is PERSONAL info"))
	assert.False(t, p.ExcludesBody("nothing to see"))
	assert.False(t, p.ExcludesBody(""), "empty body matches nothing")
}

func TestRunConfigValidate(t *testing.T) {
	ok := RunConfig{MinDelay: time.Second, MaxDelay: 2 * time.Second}
	require.NoError(t, ok.Validate())

	equal := RunConfig{MinDelay: time.Second, MaxDelay: time.Second}
	require.NoError(t, equal.Validate())

	var ve *ValidationError
	bad := RunConfig{MinDelay: 2 * time.Second, MaxDelay: time.Second}
	require.ErrorAs(t, bad.Validate(), &ve)
}

func TestRunResultSkipped(t *testing.T) {
	res := RunResult{Processed: 10, Removed: 7}
	assert.Equal(t, 3, res.Skipped())
}

func TestIsFatal(t *testing.T) {
	transient := &ActionError{Op: "delete", ItemID: "t1_a", Err: errors.New("429")}
	assert.False(t, IsFatal(transient))

	fatal := &ActionError{Op: "edit", ItemID: "t1_a", Fatal: true, Err: errors.New("401")}
	assert.True(t, IsFatal(fatal))
	assert.True(t, IsFatal(fmt.Errorf("run failed: %w", fatal)), "wrapped fatal errors are still fatal")

	assert.False(t, IsFatal(errors.New("plain")))
}
