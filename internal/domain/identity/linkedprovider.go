package identity

import (
	"fmt"
	"time"
)

// Provider names accepted by the identity linker.
const (
	ProviderKakao  = "kakao"
	ProviderNaver  = "naver"
	ProviderGoogle = "google"
)

// ProviderSuppliesFullProfile reports whether the provider can deliver phone
// and birthday in its profile payload. Kakao never does, so Kakao-linked
// identities always pass through the completion flow at least once.
func ProviderSuppliesFullProfile(provider string) bool {
	return provider == ProviderNaver
}

// IsKnownProvider reports whether the provider name is one we link against.
func IsKnownProvider(provider string) bool {
	switch provider {
	case ProviderKakao, ProviderNaver, ProviderGoogle:
		return true
	}
	return false
}

// LinkedProvider binds one external identity to exactly one local identity.
// The (provider, provider-subject-id) pair is globally unique. Rows are
// created at the first successful callback and never mutated afterwards.
type LinkedProvider struct {
	ID                uint
	SubjectID         string
	Provider          string
	ProviderSubjectID string
	CreatedAt         time.Time
}

func NewLinkedProvider(subjectID, provider, providerSubjectID string) (*LinkedProvider, error) {
	if subjectID == "" {
		return nil, fmt.Errorf("subject ID is required")
	}
	if !IsKnownProvider(provider) {
		return nil, fmt.Errorf("unknown provider: %s", provider)
	}
	if providerSubjectID == "" {
		return nil, fmt.Errorf("provider subject ID is required")
	}

	return &LinkedProvider{
		SubjectID:         subjectID,
		Provider:          provider,
		ProviderSubjectID: providerSubjectID,
		CreatedAt:         time.Now().UTC(),
	}, nil
}
