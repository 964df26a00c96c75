package mongostore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/anjiri1684/study_platform/database"
	"github.com/anjiri1684/study_platform/models"
)

func stageNames(p []bson.D) []string {
	names := make([]string, 0, len(p))
	for _, stage := range p {
		names = append(names, stage[0].Key)
	}
	return names
}

func TestStudentMaterialsPipeline(t *testing.T) {
	p := studentMaterialsPipeline("s@x.com")
	require.Len(t, p, 4)
	assert.Equal(t, []string{"$match", "$lookup", "$unwind", "$project"}, stageNames(p))
	assert.Equal(t, bson.D{{Key: "studentEmail", Value: "s@x.com"}}, p[0][0].Value)

	lookup := p[1][0].Value.(bson.D).Map()
	assert.Equal(t, materialsCollection, lookup["from"])
	assert.Equal(t, "sessionId", lookup["localField"])
	assert.Equal(t, "sessionId", lookup["foreignField"])
	assert.Equal(t, "$materials", p[2][0].Value)
}

func TestDetailsPipelineJoinsReviewsCollection(t *testing.T) {
	p := detailsPipeline("abc")
	require.Len(t, p, 2)
	assert.Equal(t, []string{"$match", "$lookup"}, stageNames(p))

	lookup := p[1][0].Value.(bson.D).Map()
	assert.Equal(t, models.ReviewsCollection, lookup["from"])
	assert.Equal(t, "reviews", lookup["as"])
}

func TestTransitionUpdate(t *testing.T) {
	fee := 25.0
	filter, update := transitionUpdate("id1", database.SessionChange{
		From:   []models.SessionStatus{models.StatusPending},
		Status: models.StatusApproved,
		Fee:    &fee,
	})

	assert.Equal(t, "id1", filter["_id"])
	assert.Equal(t, bson.M{"$in": []models.SessionStatus{models.StatusPending}}, filter["status"])
	assert.NotContains(t, filter, "tutor.email")
	assert.Equal(t, bson.M{"status": models.StatusApproved, "fee": 25.0}, update["$set"])
}

func TestTransitionUpdateScopesToOwner(t *testing.T) {
	reason := "too short"
	filter, update := transitionUpdate("id1", database.SessionChange{
		Owner:  "t@x.com",
		From:   []models.SessionStatus{models.StatusRejected},
		Status: models.StatusPending,
		Reason: &reason,
	})

	assert.Equal(t, "t@x.com", filter["tutor.email"])
	assert.Equal(t, bson.M{"status": models.StatusPending, "reason": "too short"}, update["$set"])
}

func TestSessionFilter(t *testing.T) {
	f := sessionFilter(database.SessionFilter{Status: models.StatusApproved})
	assert.Equal(t, bson.M{"status": models.StatusApproved}, f)
	assert.Empty(t, sessionFilter(database.SessionFilter{}))
}
