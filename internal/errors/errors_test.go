package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"surveystat/domain/core"
)

func TestFromAnalysis(t *testing.T) {
	cases := []struct {
		err  error
		code string
	}{
		{&core.InsufficientCategoriesError{Variable: "a", Found: 1, Required: 2}, CodeInsufficientCategories},
		{&core.InsufficientSampleSizeError{Test: "pearson", Observed: 2, Required: 3}, CodeInsufficientSampleSize},
		{&core.DegenerateInputError{Test: "anova", Reason: "flat"}, CodeDegenerateInput},
		{&core.UnavailableSignificanceError{Test: "chi_square"}, CodeUnavailableSignificance},
		{fmt.Errorf("lookup: %w", core.NewVariableNotFoundError("age")), CodeNotFound},
		{stderrors.New("boom"), CodeInternalError},
	}
	for _, tc := range cases {
		appErr := FromAnalysis(tc.err)
		require.NotNil(t, appErr)
		assert.Equal(t, tc.code, appErr.Code, tc.err.Error())
		assert.ErrorIs(t, appErr, tc.err)
	}
	assert.Nil(t, FromAnalysis(nil))
}

func TestWrapKeepsCode(t *testing.T) {
	err := Wrap(InvalidInput("bad column"), "analyze request")
	assert.Equal(t, CodeInvalidInput, GetCode(err))
	assert.Equal(t, "analyze request: bad column", err.Error())

	wrapped := Wrapf(&core.DegenerateInputError{Test: "pearson", Reason: "constant"}, "pair %s/%s", "a", "b")
	assert.Equal(t, CodeDegenerateInput, GetCode(wrapped))
	assert.True(t, IsAppError(wrapped))

	assert.Nil(t, Wrap(nil, "noop"))
}

func TestWithCode(t *testing.T) {
	err := WithCode(CodeValidationError, stderrors.New("threshold out of range"))
	assert.Equal(t, CodeValidationError, GetCode(err))
	assert.Equal(t, "threshold out of range", err.Error())
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, HTTPStatus(CodeNotFound))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(CodeInvalidInput))
	assert.Equal(t, http.StatusUnprocessableEntity, HTTPStatus(CodeInsufficientCategories))
	assert.Equal(t, http.StatusUnprocessableEntity, HTTPStatus(CodeUnavailableSignificance))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(CodeInternalError))
}
