package middleware

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type imageRequest struct {
	Slug        string `json:"slug" binding:"required,slug"`
	ContentType string `json:"contentType" binding:"required,image_content_type"`
}

func newTestValidator(t *testing.T) *validator.Validate {
	t.Helper()
	v := validator.New()
	v.SetTagName("binding")
	require.NoError(t, RegisterValidators(v))
	return v
}

func TestRegisterValidators_Slug(t *testing.T) {
	v := newTestValidator(t)

	valid := []string{"vintage-chair", "Oak-Table", " lamp-2 "}
	for _, s := range valid {
		assert.NoError(t, v.Struct(imageRequest{Slug: s, ContentType: "image/png"}), s)
	}

	invalid := []string{"two--dashes", "-leading", "spaces inside", "ümlaut"}
	for _, s := range invalid {
		assert.Error(t, v.Struct(imageRequest{Slug: s, ContentType: "image/png"}), s)
	}
}

func TestRegisterValidators_ImageContentType(t *testing.T) {
	v := newTestValidator(t)

	assert.NoError(t, v.Struct(imageRequest{Slug: "chair", ContentType: "IMAGE/JPEG"}))
	assert.NoError(t, v.Struct(imageRequest{Slug: "chair", ContentType: "image/webp"}))
	assert.Error(t, v.Struct(imageRequest{Slug: "chair", ContentType: "image/gif"}))
}

func TestValidationDetails(t *testing.T) {
	v := newTestValidator(t)

	err := v.Struct(imageRequest{Slug: "bad--slug"})
	require.Error(t, err)

	details := ValidationDetails(err)
	require.Len(t, details, 2)
	assert.Equal(t, "slug", details[0].Field)
	assert.Contains(t, details[0].Message, "lowercase letters")
	assert.Equal(t, "contentType", details[1].Field)
	assert.Equal(t, "This field is required", details[1].Message)
}

func TestValidationDetails_NonValidatorError(t *testing.T) {
	assert.Nil(t, ValidationDetails(assert.AnError))
}
