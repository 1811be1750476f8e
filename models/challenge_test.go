package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAcceptedProofTypes(t *testing.T) {
	c := &Challenge{ProofTypes: "VIDEO, STRAVA ,MANUAL"}
	assert.Equal(t, []ProofType{ProofVideo, ProofStrava, ProofManual}, c.AcceptedProofTypes())

	// Junk entries are dropped rather than breaking the list.
	c.ProofTypes = "VIDEO,BOGUS"
	assert.Equal(t, []ProofType{ProofVideo}, c.AcceptedProofTypes())

	c.ProofTypes = ""
	assert.Empty(t, c.AcceptedProofTypes())
}

func TestAcceptsProof(t *testing.T) {
	c := &Challenge{ProofTypes: "IMAGE,GARMIN"}
	assert.True(t, c.AcceptsProof(ProofGarmin))
	assert.False(t, c.AcceptsProof(ProofVideo))
}

func TestIsGlobal(t *testing.T) {
	c := &Challenge{}
	assert.True(t, c.IsGlobal())

	gymID := uint(4)
	c.GymID = &gymID
	assert.False(t, c.IsGlobal())
}

func TestRankOrdering(t *testing.T) {
	assert.True(t, RankS.Above(RankA))
	assert.True(t, RankE.Above(RankF))
	assert.False(t, RankF.Above(RankF))
	assert.False(t, RankC.Above(RankB))

	assert.True(t, RankS.Valid())
	assert.False(t, Rank("Z").Valid())
	assert.Equal(t, -1, Rank("Z").Index())
}

func TestSubmissionDetailsRoundTrip(t *testing.T) {
	var s Submission
	s.SetDetails(StravaProof{ActivityID: 991})
	assert.Equal(t, ProofStrava, s.ProofType)
	assert.Equal(t, StravaProof{ActivityID: 991}, s.Details())

	// Switching the variant clears the columns of the previous one.
	s.SetDetails(VideoProof{URL: "https://example.com/v.mp4"})
	assert.Equal(t, int64(0), s.ProofActivityID)
	assert.Equal(t, VideoProof{URL: "https://example.com/v.mp4"}, s.Details())
}
