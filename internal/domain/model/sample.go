package model

// SampleEntities returns the fixed demonstration dataset shown when the
// backend cannot be reached and the sample fallback is enabled. A new slice
// is returned on every call so callers may keep it as their own cache.
func SampleEntities() []Entity {
	return []Entity{
		{ID: 1, Name: "Sample Entity 1", Contact: "jose.pazos@hotmail.com"},
		{ID: 2, Name: "Sample Entity 2", Contact: "kathiabg@hotmail.com"},
		{ID: 3, Name: "Sample Entity 3", Contact: "kathiabg@gmail.com"},
	}
}
