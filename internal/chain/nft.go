package chain

import (
	"fmt"
	"strings"
	"time"
)

// AchievementNFT is a student achievement shaped as mintable NFT metadata.
type AchievementNFT struct {
	StudentID       string
	AchievementName string
	Metadata        map[string]any
	CreatedAt       time.Time
}

// NewAchievementNFT stamps an achievement for a student at the current time.
func NewAchievementNFT(studentID, achievementName string, metadata map[string]any) AchievementNFT {
	return AchievementNFT{
		StudentID:       studentID,
		AchievementName: achievementName,
		Metadata:        metadata,
		CreatedAt:       time.Now().UTC(),
	}
}

// TokenMetadata renders the standard NFT metadata document.
func (n AchievementNFT) TokenMetadata() map[string]any {
	image := "ipfs://achievement/" + strings.ReplaceAll(strings.ToLower(n.AchievementName), " ", "_")
	return map[string]any{
		"name":        n.AchievementName,
		"description": fmt.Sprintf("Achievement unlocked by %s", n.StudentID),
		"image":       image,
		"attributes": []map[string]any{
			{"trait_type": "Student ID", "value": n.StudentID},
			{"trait_type": "Achievement", "value": n.AchievementName},
			{"trait_type": "Date Earned", "value": n.CreatedAt.Format(time.RFC3339)},
		},
		"metadata": n.Metadata,
	}
}
