package domain

// The ownership/visibility policy is expressed as pure predicates over
// (Principal, Task). The store's list query builds its WHERE clause from the
// same boolean logic as CanRead; the list/detail consistency tests hold the
// two sides together.

// CanRead reports whether the principal may read the task: global tasks are
// readable by everyone, private tasks only by their owner.
func CanRead(p Principal, t *Task) bool {
	if t.Visibility == VisibilityGlobal {
		return true
	}
	return t.IsOwnedBy(p)
}

// CanModify reports whether the principal may update or delete the task.
// Authenticated principals may modify only their own tasks. Anonymous callers
// may modify only ownerless tasks; there is no principal to check against.
func CanModify(p Principal, t *Task) bool {
	if p.IsAuthenticated() {
		return t.IsOwnedBy(p)
	}
	return t.OwnerID == nil
}

// ApplyCreatePolicy applies the collection-level create constraints to a task
// being created by the given principal: the owner is set to the principal when
// authenticated, and an anonymous creation forces the visibility to global
// regardless of what the payload requested.
func ApplyCreatePolicy(p Principal, t *Task) {
	if p.IsAuthenticated() {
		ownerID := p.UserID
		t.OwnerID = &ownerID
		return
	}

	t.OwnerID = nil
	t.Visibility = VisibilityGlobal
}
