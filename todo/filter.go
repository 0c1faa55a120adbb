package todo

// Filter narrows a remote list request. Nil fields mean "don't filter".
// Filtering is server-side: the filter is forwarded as query parameters and
// the client performs no additional narrowing.
type Filter struct {
	Priority *Priority
	Status   *Status
}

// IsZero reports whether the filter requests the full list.
func (f Filter) IsZero() bool {
	return f.Priority == nil && f.Status == nil
}

// PriorityPtr returns a pointer to the provided priority.
func PriorityPtr(priority Priority) *Priority {
	return &priority
}

// StatusPtr returns a pointer to the provided status.
func StatusPtr(status Status) *Status {
	return &status
}
