package order

import "marketplace/internal/core/domain/model/actor"

type transitionKey struct {
	role actor.Role
	from Status
}

type statusSet map[Status]struct{}

func setOf(statuses ...Status) statusSet {
	s := make(statusSet, len(statuses))
	for _, st := range statuses {
		s[st] = struct{}{}
	}
	return s
}

func (s statusSet) contains(st Status) bool {
	_, ok := s[st]
	return ok
}

// transitions lists every legal (role, from) -> targets edge. A missing key is
// an illegal transition; a key whose set lacks the target is an invalid target.
// Customers have no rows: they only move an order through delivery confirmation.
var transitions = map[transitionKey]statusSet{
	{actor.Restaurant, Pending}:   setOf(Confirmed, Cancelled),
	{actor.Restaurant, Confirmed}: setOf(Preparing),
	{actor.Restaurant, Preparing}: setOf(Ready),

	{actor.DeliveryAgent, Ready}:    setOf(PickedUp),
	{actor.DeliveryAgent, PickedUp}: setOf(Delivered),

	{actor.Admin, Pending}:   setOf(Confirmed, Cancelled),
	{actor.Admin, Confirmed}: setOf(Preparing, Cancelled),
	{actor.Admin, Preparing}: setOf(Ready, Cancelled),
	{actor.Admin, Ready}:     setOf(PickedUp, Cancelled),
	{actor.Admin, PickedUp}:  setOf(Delivered, Cancelled),
}

// AllowedTargets returns the statuses role may move an order to from "from".
// The second result is false when the pair has no row at all.
func AllowedTargets(role actor.Role, from Status) ([]Status, bool) {
	row, ok := transitions[transitionKey{role: role, from: from}]
	if !ok {
		return nil, false
	}
	out := make([]Status, 0, len(row))
	for st := Pending; st <= Cancelled; st++ {
		if row.contains(st) {
			out = append(out, st)
		}
	}
	return out, true
}
