package prompt

import (
	"context"
	"errors"
	"testing"

	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/stretchr/testify/require"
)

func TestTranslateSurveyErr(t *testing.T) {
	require.True(t, errors.Is(translateSurveyErr(terminal.InterruptErr), ErrAborted))

	plain := errors.New("boom")
	require.Equal(t, plain, translateSurveyErr(plain))
}

func TestDriverHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d := NewSurveyDriver()

	_, err := d.Input(ctx, InputConfig{Message: "name?"})
	require.ErrorIs(t, err, context.Canceled)

	_, err = d.Confirm(ctx, ConfirmConfig{Message: "sure?"})
	require.ErrorIs(t, err, context.Canceled)

	_, err = d.TextArea(ctx, TextAreaConfig{Message: "details?"})
	require.ErrorIs(t, err, context.Canceled)

	_, err = d.Select(ctx, SelectConfig{Message: "which?", Options: []string{"a", "b"}})
	require.ErrorIs(t, err, context.Canceled)

	require.ErrorIs(t, d.Info(ctx, "hello"), context.Canceled)
}
