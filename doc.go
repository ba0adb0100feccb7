// Package chorewheel rotates household chores fairly, one round at a time.
//
// A round turns a household snapshot into a min-cost flow network and
// reads the assignment back from the saturated edges:
//
//	source ─► user slots ─► chores ─► sink
//
// Every user gets an even share of slots (the first C mod U users by ID get
// one more), every slot→chore edge is priced by the user's preference, a
// little tie-breaking noise and a penalty for repeating last round's chore.
//
// Packages:
//
//	household/      snapshot types: users, chores, preferences
//	cost/           the pricing policy for one (user, chore) pair
//	flow/           arena flow graph, min-cost max-flow and Edmonds–Karp
//	assign/         network builder, extractor and the round Engine
//	internal/       config, logging, metrics, sqlite store, kafka events, HTTP API
//	cmd/chorewheel  the service binary
//
// Quick example:
//
//	engine := assign.NewEngine(assign.WithCostOptions(cost.WithSeed(7)))
//	res, err := engine.Assign(h)
//	if err != nil {
//		return err
//	}
//	for _, a := range res.Assignments {
//		fmt.Println(a.UserID, "→", a.ChoreID)
//	}
package chorewheel
