package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArticleStatus_RoundTripNames(t *testing.T) {
	for _, s := range []ArticleStatus{
		ArticleStatusDraft, ArticleStatusSubmitted, ArticleStatusUnderReview,
		ArticleStatusApproved, ArticleStatusRejected, ArticleStatusPublished,
	} {
		parsed, err := ParseArticleStatus(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	assert.Equal(t, "under_review", ArticleStatusUnderReview.String())
	_, err := ParseArticleStatus("UnderReview")
	assert.Error(t, err)
}

func TestArticleStatus_JSONAndSQL(t *testing.T) {
	b, err := json.Marshal(struct {
		Status ArticleStatus `json:"status"`
	}{ArticleStatusPublished})
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"published"}`, string(b))

	var out struct {
		Status ArticleStatus `json:"status"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"status":"submitted"}`), &out))
	assert.Equal(t, ArticleStatusSubmitted, out.Status)
	assert.Error(t, json.Unmarshal([]byte(`{"status":"bogus"}`), &out))

	var scanned ArticleStatus
	require.NoError(t, scanned.Scan([]byte("approved")))
	assert.Equal(t, ArticleStatusApproved, scanned)
	assert.Error(t, scanned.Scan(nil))

	v, err := ArticleStatusRejected.Value()
	require.NoError(t, err)
	assert.Equal(t, "rejected", v)

	_, err = ArticleStatus(0).Value()
	assert.Error(t, err)
}

func TestArticleStatus_Reviewable(t *testing.T) {
	assert.True(t, ArticleStatusSubmitted.Reviewable())
	assert.True(t, ArticleStatusUnderReview.Reviewable())
	assert.False(t, ArticleStatusDraft.Reviewable())
	assert.False(t, ArticleStatusApproved.Reviewable())
}

func TestCategoryType_Names(t *testing.T) {
	ct, err := ParseCategoryType("news_article_type")
	require.NoError(t, err)
	assert.Equal(t, CategoryTypeNewsArticleType, ct)

	b, err := json.Marshal(CategoryTypeEvent)
	require.NoError(t, err)
	assert.Equal(t, `"event"`, string(b))
}
