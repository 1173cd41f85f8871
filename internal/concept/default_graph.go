package concept

// DefaultGraph returns the pre-built concept graph for the Swift / SwiftUI /
// concurrency / testing domain. It is constructed programmatically at
// startup with a fixed body of relations; there is no persistence and no
// online learning.
func DefaultGraph() *Graph {
	g := New()

	// Concurrency
	g.AddRelation("sendable", "actor isolation", 1.0)
	g.AddRelation("sendable", "data race", 1.0)
	g.AddRelation("sendable", "crossing boundary", 0.9)
	g.AddRelation("sendable", "thread safety", 0.8)
	g.AddRelation("sendable", "nonisolated", 0.7)
	g.AddRelation("sendable", "@unchecked sendable", 0.8)

	g.AddRelation("actor", "isolation", 1.0)
	g.AddRelation("actor", "actor isolation", 1.0)
	g.AddRelation("actor", "reentrancy", 0.8)
	g.AddRelation("actor", "sendable", 0.9)
	g.AddRelation("actor", "nonisolated", 0.8)
	g.AddRelation("actor", "async", 0.7)

	g.AddRelation("@mainactor", "ui thread", 1.0)
	g.AddRelation("@mainactor", "main thread", 1.0)
	g.AddRelation("@mainactor", "global actor", 0.9)
	g.AddRelation("@mainactor", "isolation domain", 0.8)
	g.AddRelation("@mainactor", "viewmodel", 0.7)
	g.AddRelation("@mainactor", "actor isolation", 0.9)

	g.AddRelation("async", "await", 1.0)
	g.AddRelation("async", "task", 0.9)
	g.AddRelation("async", "suspension point", 0.8)
	g.AddRelation("async", "structured concurrency", 0.8)
	g.AddRelation("async", "async let", 0.9)
	g.AddRelation("async", "concurrency", 1.0)

	g.AddRelation("task", "cancellation", 0.9)
	g.AddRelation("task", "task group", 0.9)
	g.AddRelation("task", "structured concurrency", 0.9)
	g.AddRelation("task", "unstructured task", 0.7)
	g.AddRelation("task", "task.detached", 0.7)
	g.AddRelation("task", "priority", 0.6)

	g.AddRelation("data race", "thread safety", 1.0)
	g.AddRelation("data race", "sendable", 1.0)
	g.AddRelation("data race", "actor isolation", 0.9)
	g.AddRelation("data race", "strict concurrency", 0.9)
	g.AddRelation("data race", "mutable state", 0.8)

	g.AddRelation("swift 6", "strict concurrency", 1.0)
	g.AddRelation("swift 6", "region-based isolation", 0.9)
	g.AddRelation("swift 6", "sendable", 0.9)
	g.AddRelation("swift 6", "breaking changes", 0.8)
	g.AddRelation("swift 6", "migration", 0.9)

	g.AddRelation("continuation", "async", 0.9)
	g.AddRelation("continuation", "callback", 0.9)
	g.AddRelation("continuation", "bridging", 0.8)

	// SwiftUI
	g.AddRelation("@state", "source of truth", 1.0)
	g.AddRelation("@state", "view update", 0.9)
	g.AddRelation("@state", "private", 0.7)
	g.AddRelation("@state", "@binding", 0.9)

	g.AddRelation("@observable", "observation", 1.0)
	g.AddRelation("@observable", "@state", 0.8)
	g.AddRelation("@observable", "viewmodel", 0.9)
	g.AddRelation("@observable", "ios 17", 0.8)
	g.AddRelation("@observable", "macro", 0.7)

	g.AddRelation("@binding", "two-way binding", 1.0)
	g.AddRelation("@binding", "child view", 0.8)
	g.AddRelation("@binding", "@state", 0.9)

	g.AddRelation("@environment", "dependency injection", 0.9)
	g.AddRelation("@environment", "environment values", 1.0)
	g.AddRelation("@environment", "view hierarchy", 0.8)

	g.AddRelation("navigationstack", "navigation", 1.0)
	g.AddRelation("navigationstack", "navigationpath", 0.9)
	g.AddRelation("navigationstack", "programmatic navigation", 0.9)
	g.AddRelation("navigationstack", "deep link", 0.7)
	g.AddRelation("navigationstack", "ios 16", 0.7)

	g.AddRelation("viewmodel", "mvvm", 1.0)
	g.AddRelation("viewmodel", "@observable", 0.9)
	g.AddRelation("viewmodel", "business logic", 0.9)
	g.AddRelation("viewmodel", "@mainactor", 0.8)
	g.AddRelation("viewmodel", "separation of concerns", 0.8)

	g.AddRelation("performance", "lazy loading", 0.9)
	g.AddRelation("performance", "identity", 0.8)
	g.AddRelation("performance", "equatable", 0.8)
	g.AddRelation("performance", "redraw", 0.9)
	g.AddRelation("performance", "profiling", 0.7)

	// Testing
	g.AddRelation("@test", "swift testing", 1.0)
	g.AddRelation("@test", "#expect", 0.9)
	g.AddRelation("@test", "@suite", 0.8)
	g.AddRelation("@test", "parameterized", 0.8)

	g.AddRelation("#expect", "assertion", 1.0)
	g.AddRelation("#expect", "swift testing", 0.9)
	g.AddRelation("#expect", "xctest", 0.6)

	g.AddRelation("mock", "test double", 1.0)
	g.AddRelation("mock", "stub", 0.8)
	g.AddRelation("mock", "protocol", 0.9)
	g.AddRelation("mock", "dependency injection", 0.8)

	g.AddRelation("xctest", "unit test", 1.0)
	g.AddRelation("xctest", "xctestcase", 1.0)
	g.AddRelation("xctest", "xcassertion", 0.9)
	g.AddRelation("xctest", "swift testing", 0.7)

	// Architecture
	g.AddRelation("mvvm", "viewmodel", 1.0)
	g.AddRelation("mvvm", "separation of concerns", 0.9)
	g.AddRelation("mvvm", "data binding", 0.8)
	g.AddRelation("mvvm", "testability", 0.8)

	g.AddRelation("clean architecture", "use case", 0.9)
	g.AddRelation("clean architecture", "repository", 0.9)
	g.AddRelation("clean architecture", "dependency inversion", 0.9)
	g.AddRelation("clean architecture", "testability", 0.8)

	g.AddRelation("dependency injection", "protocol", 0.9)
	g.AddRelation("dependency injection", "testability", 0.9)
	g.AddRelation("dependency injection", "inversion of control", 0.9)

	// Aliases
	g.AddAlias("di", "dependency injection")
	g.AddAlias("vm", "viewmodel")
	g.AddAlias("s6", "swift 6")
	g.AddAlias("tca", "the composable architecture")
	g.AddAlias("async/await", "async")
	g.AddAlias("mainactor", "@mainactor")
	g.AddAlias("observable", "@observable")
	g.AddAlias("state", "@state")

	return g
}
