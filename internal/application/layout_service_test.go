package application

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-lms-api/internal/domain/entity"
	"github.com/oksasatya/go-lms-api/pkg/apperror"
)

func TestLayoutLifecycle(t *testing.T) {
	h := newHarness(t)

	banner, err := h.layouts.Create(h.ctx, LayoutInput{Type: "Banner", Image: pngURI, Title: "Learn", SubTitle: "today"})
	require.NoError(t, err)
	first := banner.Banner.Image.PublicID

	_, err = h.layouts.Create(h.ctx, LayoutInput{Type: "Banner", Image: pngURI})
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	edited, err := h.layouts.Edit(h.ctx, LayoutInput{Type: "Banner", Image: pngURI, Title: "Learn more"})
	require.NoError(t, err)
	assert.Equal(t, "Learn more", edited.Banner.Title)
	assert.False(t, h.media.Has(first))
	assert.Equal(t, 1, h.media.Len())

	kept, err := h.layouts.Edit(h.ctx, LayoutInput{Type: "Banner", Title: "Same image"})
	require.NoError(t, err)
	assert.Equal(t, edited.Banner.Image, kept.Banner.Image)

	_, err = h.layouts.Create(h.ctx, LayoutInput{Type: "FAQ", FAQ: []entity.FAQItem{{Question: "Refunds?", Answer: "30 days"}}})
	require.NoError(t, err)
	faq, err := h.layouts.Get(h.ctx, "FAQ")
	require.NoError(t, err)
	assert.Len(t, faq.FAQ, 1)

	_, err = h.layouts.Get(h.ctx, "Categories")
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
	_, err = h.layouts.Get(h.ctx, "Footer")
	assert.True(t, apperror.Is(err, apperror.KindValidation))
	_, err = h.layouts.Edit(h.ctx, LayoutInput{Type: "Categories"})
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}
