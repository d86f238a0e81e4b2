package service

import (
	"sync"

	"legalapi/internal/model"
)

// PolicyPredicate transforms the acceptance-requirement decision for one
// document and account. Predicates run in registration order after the
// built-in rule; each receives the decision so far and returns the new one,
// so a predicate can veto or force a requirement.
type PolicyPredicate func(doc *model.Document, isNewUser bool, account model.Account, required bool) bool

// PolicyEvaluator decides whether a user must agree to a document. It is a
// pure function of the document, the acting account and the registered
// predicates; it performs no storage access of its own.
type PolicyEvaluator struct {
	mu         sync.RWMutex
	predicates []PolicyPredicate
}

// NewPolicyEvaluator returns an evaluator with only the built-in rule.
func NewPolicyEvaluator() *PolicyEvaluator {
	return &PolicyEvaluator{}
}

// Register appends a predicate. Registration order is invocation order.
func (e *PolicyEvaluator) Register(p PolicyPredicate) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.predicates = append(e.predicates, p)
}

// MustAgree reports whether the account must accept the document.
//
// Without a published version there is nothing to agree to, so the answer is
// false regardless of flags. New users are governed solely by RequireSignup;
// acceptance history is irrelevant during signup. Existing users must hold
// the document's re-accept capability in addition to the RequireExisting
// flag.
func (e *PolicyEvaluator) MustAgree(doc *model.Document, isNewUser bool, account model.Account) bool {
	required := false
	switch {
	case doc == nil || !doc.HasPublishedVersion():
		// nothing published
	case isNewUser:
		required = doc.RequireSignup
	default:
		required = doc.RequireExisting &&
			account != nil &&
			account.HasCapability(doc.PermissionExistingUser())
	}

	e.mu.RLock()
	defer e.mu.RUnlock()
	for _, p := range e.predicates {
		required = p(doc, isNewUser, account, required)
	}
	return required
}

// AcceptanceDeliveryMethod returns the configured notification method for the
// given user class, empty when unset.
func AcceptanceDeliveryMethod(doc *model.Document, isNewUser bool) string {
	if doc == nil {
		return ""
	}
	if isNewUser {
		return doc.Settings.NewUsers.RequireMethod
	}
	return doc.Settings.ExistingUsers.RequireMethod
}
