package simulate

import (
	"context"
	"crypto/rand"
	"math/big"

	"github.com/google/uuid"
	"github.com/okian/teamforge/pkg/logger"
)

// Gesture mix weights, out of weightTotal.
const (
	weightDrag     = 35
	weightAdd      = 20
	weightMove     = 15
	weightRemove   = 12
	weightToggle   = 6
	weightPointer  = 5
	weightChoose   = 5
	weightSaveTeam = 2
	weightTotal    = weightDrag + weightAdd + weightMove + weightRemove +
		weightToggle + weightPointer + weightChoose + weightSaveTeam
)

// Sizes for the drop targets the generator aims at.
const (
	maxIndex         = 12
	containerPercent = 30
)

const (
	teamContainer = "team-container"
	poolContainer = "pool-container"
)

// randIntn returns a uniform int in [0, n) using crypto/rand.
func randIntn(n int) int {
	if n <= 1 {
		return 0
	}
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0
	}
	return int(v.Int64())
}

func pick(ids []string) string {
	return ids[randIntn(len(ids))]
}

// GenerateGestures builds n random gestures over the given candidates and
// saved teams. A replay fraction of the committing gestures is appended a
// second time with the same event id.
func GenerateGestures(ctx context.Context, n int, candidates, teams []string, replay float64) []Gesture {
	if n <= 0 || len(candidates) == 0 {
		return nil
	}
	gestures := make([]Gesture, 0, n+int(float64(n)*replay))
	for i := 0; i < n; i++ {
		gestures = append(gestures, generateGesture(candidates, teams))
	}

	replayed := 0
	limit := int(float64(n) * replay)
	for i := 0; i < n && replayed < limit; i++ {
		if gestures[i].EventID == "" {
			continue
		}
		gestures = append(gestures, gestures[i])
		replayed++
	}

	logger.Get().Info(ctx, "generated gestures",
		logger.Int("count", len(gestures)),
		logger.Int("replayed", replayed))
	return gestures
}

func generateGesture(candidates, teams []string) Gesture {
	roll := randIntn(weightTotal)
	switch {
	case roll < weightDrag:
		return generateDrag(candidates)
	case roll < weightDrag+weightAdd:
		return Gesture{Kind: KindAdd, EventID: uuid.NewString(), ID: pick(candidates), Index: randIntn(maxIndex)}
	case roll < weightDrag+weightAdd+weightMove:
		return Gesture{Kind: KindMove, EventID: uuid.NewString(), ID: pick(candidates), Index: randIntn(maxIndex)}
	case roll < weightDrag+weightAdd+weightMove+weightRemove:
		return Gesture{Kind: KindRemove, EventID: uuid.NewString(), ID: pick(candidates)}
	case roll < weightDrag+weightAdd+weightMove+weightRemove+weightToggle:
		return Gesture{Kind: KindToggle}
	case roll < weightDrag+weightAdd+weightMove+weightRemove+weightToggle+weightPointer:
		return Gesture{Kind: KindPointer}
	case roll < weightTotal-weightSaveTeam:
		g := Gesture{Kind: KindChoose}
		if len(teams) > 0 && randIntn(2) == 0 {
			id := pick(teams)
			g.TeamID = &id
		}
		return g
	default:
		return Gesture{Kind: KindSaveTeam, ID: "sim-" + uuid.NewString()[:8]}
	}
}

// generateDrag picks a source and a drop target. The source index and
// collection are guesses; the service resolves the dragged id itself.
func generateDrag(candidates []string) Gesture {
	g := Gesture{
		Kind:    KindDrag,
		EventID: uuid.NewString(),
		ID:      pick(candidates),
		Source:  "pool",
		Index:   randIntn(maxIndex),
	}
	if randIntn(2) == 0 {
		g.Source = "team"
	}

	switch roll := randIntn(PercentageMultiplier); {
	case roll < containerPercent/2:
		g.OverID, g.OverCollection = teamContainer, "team"
	case roll < containerPercent:
		g.OverID, g.OverCollection = poolContainer, "pool"
	case roll < containerPercent+10:
		// dropped outside any target
	default:
		g.OverID = pick(candidates)
		g.OverCollection = "team"
		if randIntn(2) == 0 {
			g.OverCollection = "pool"
		}
	}
	return g
}
