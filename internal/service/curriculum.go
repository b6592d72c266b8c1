package service

// WeekContent 单周教学内容。Weekday 按周一到周五下标取值，
// 列表不够长时钳制到第 0 项；Saturday/Sunday 各提供两条项目任务素材。
type WeekContent struct {
	Focus    string
	Weekday  []string
	Saturday []string
	Sunday   []string
}

// MonthContent 单月教学内容
type MonthContent struct {
	Goal  string
	Weeks []WeekContent
}

// Curriculum 按兴趣方向编写的课程表。Fallback 为 true 的方向没有
// 编写过的月度内容，生成时全程走通用周计划，这是声明出来的分支
// 而不是靠空数组触发的隐式行为。
type Curriculum struct {
	Key       string
	YearGoals []string
	Months    []MonthContent
	Fallback  bool
}

const defaultCurriculumKey = "web-dev"

// CurriculumFor 按首选兴趣取课程表，未编写的兴趣退回 web-dev 基线
func CurriculumFor(interest string) Curriculum {
	if c, ok := curricula[interest]; ok {
		return c
	}
	return curricula[defaultCurriculumKey]
}

var curricula = map[string]Curriculum{
	"web-dev": {
		Key: "web-dev",
		YearGoals: []string{
			"Master the fundamentals of web development and build your first projects",
			"Go deep on a modern frontend framework and backend APIs",
			"Ship production-grade full-stack applications with real users",
			"Specialize, contribute to open source and mentor others",
		},
		Months: []MonthContent{
			{
				Goal: "HTML, CSS and how the web works",
				Weeks: []WeekContent{
					{
						Focus:    "HTML structure and semantics",
						Weekday:  []string{"HTML document structure", "semantic tags and accessibility", "forms and inputs", "tables and media", "HTML best practices"},
						Saturday: []string{"Start a personal profile page", "Sketch the page layout"},
						Sunday:   []string{"Finish the profile page", "Review semantic markup choices"},
					},
					{
						Focus:    "CSS selectors and the box model",
						Weekday:  []string{"CSS selectors and specificity", "the box model", "colors and typography", "units and custom properties", "debugging styles in devtools"},
						Saturday: []string{"Start styling the profile page", "Pick a color palette"},
						Sunday:   []string{"Finish the styled page", "Review box model usage"},
					},
					{
						Focus:    "Layout with flexbox and grid",
						Weekday:  []string{"flexbox fundamentals", "grid fundamentals", "responsive breakpoints", "mobile-first layout", "common layout patterns"},
						Saturday: []string{"Start a responsive landing page", "Define the grid structure"},
						Sunday:   []string{"Finish the landing page", "Review responsiveness on three screen sizes"},
					},
					{
						Focus:    "How the web works",
						Weekday:  []string{"HTTP requests and responses", "URLs, DNS and hosting", "browsers and rendering", "developer tools network tab", "web security basics"},
						Saturday: []string{"Start deploying your pages", "Set up free static hosting"},
						Sunday:   []string{"Finish the deployment", "Review the request waterfall of your site"},
					},
				},
			},
			{
				Goal: "JavaScript fundamentals",
				Weeks: []WeekContent{
					{
						Focus:    "Variables, types and control flow",
						Weekday:  []string{"variables and types", "conditionals and loops", "functions and scope", "arrays and objects", "error handling"},
						Saturday: []string{"Start a number guessing game", "Design the game loop"},
						Sunday:   []string{"Finish the game", "Review your use of functions"},
					},
					{
						Focus:    "The DOM and events",
						Weekday:  []string{"selecting and modifying elements", "event listeners", "creating elements dynamically", "form handling", "browser storage"},
						Saturday: []string{"Start an interactive to-do list", "Plan the data model"},
						Sunday:   []string{"Finish the to-do list", "Review event handler structure"},
					},
					{
						Focus:    "Asynchronous JavaScript",
						Weekday:  []string{"callbacks and the event loop", "promises", "async/await", "fetch and JSON", "handling failures gracefully"},
						Saturday: []string{"Start a weather widget using a public API", "Choose and explore the API"},
						Sunday:   []string{"Finish the weather widget", "Review error states and loading states"},
					},
					{
						Focus:    "Modern JavaScript patterns",
						Weekday:  []string{"modules and imports", "array methods map/filter/reduce", "destructuring and spread", "closures in practice", "code organization"},
						Saturday: []string{"Start refactoring your projects into modules", "Identify reusable pieces"},
						Sunday:   []string{"Finish the refactor", "Review before/after readability"},
					},
				},
			},
			{
				Goal: "Version control and developer tooling",
				Weeks: []WeekContent{
					{
						Focus:    "Git fundamentals",
						Weekday:  []string{"init, add and commit", "branching and merging", "resolving conflicts", "remotes and GitHub", "writing good commit messages"},
						Saturday: []string{"Start publishing your projects to GitHub", "Write a README for each"},
						Sunday:   []string{"Finish the GitHub portfolio", "Review your commit history"},
					},
					{
						Focus:    "The command line",
						Weekday:  []string{"navigation and files", "pipes and redirection", "environment variables", "package managers", "shell scripting basics"},
						Saturday: []string{"Start automating your build steps", "List repetitive tasks to script"},
						Sunday:   []string{"Finish the automation scripts", "Review what saved the most time"},
					},
					{
						Focus:    "Editors and debugging",
						Weekday:  []string{"editor shortcuts and snippets", "linters and formatters", "breakpoint debugging", "reading stack traces", "searching and navigating codebases"},
						Saturday: []string{"Start configuring a productive dev environment", "Pick linter and formatter rules"},
						Sunday:   []string{"Finish the environment setup", "Review your debugging workflow on a planted bug"},
					},
					{
						Focus:    "Collaboration workflows",
						Weekday:  []string{"forks and pull requests", "code review etiquette", "issues and project boards", "semantic versioning", "open source licenses"},
						Saturday: []string{"Start your first open source contribution", "Find a good-first-issue"},
						Sunday:   []string{"Finish and submit the pull request", "Review feedback received"},
					},
				},
			},
			{
				Goal: "A frontend framework in depth",
				Weeks: []WeekContent{
					{
						Focus:    "Components and props",
						Weekday:  []string{"component thinking", "props and composition", "conditional rendering", "lists and keys", "component file structure"},
						Saturday: []string{"Start rebuilding the to-do list with components", "Break the UI into a component tree"},
						Sunday:   []string{"Finish the component rebuild", "Review component boundaries"},
					},
					{
						Focus:    "State and effects",
						Weekday:  []string{"local state", "lifting state up", "side effects and lifecycle", "controlled forms", "derived state pitfalls"},
						Saturday: []string{"Start a multi-step form project", "Design the state shape"},
						Sunday:   []string{"Finish the multi-step form", "Review state transitions"},
					},
					{
						Focus:    "Routing and data fetching",
						Weekday:  []string{"client-side routing", "route parameters", "data fetching patterns", "loading and error UI", "caching responses"},
						Saturday: []string{"Start a small content site with routes", "Plan the route map"},
						Sunday:   []string{"Finish the content site", "Review navigation and fetch timing"},
					},
					{
						Focus:    "Styling and component libraries",
						Weekday:  []string{"CSS-in-JS vs utility CSS", "design tokens", "responsive components", "accessibility in components", "theming"},
						Saturday: []string{"Start a shared UI component kit", "Choose the styling approach"},
						Sunday:   []string{"Finish three reusable components", "Review API consistency across them"},
					},
				},
			},
			{
				Goal: "Backend APIs and databases",
				Weeks: []WeekContent{
					{
						Focus:    "HTTP servers and REST",
						Weekday:  []string{"routing and handlers", "request validation", "status codes and errors", "middleware", "API documentation"},
						Saturday: []string{"Start a notes REST API", "Define the endpoints"},
						Sunday:   []string{"Finish the API", "Review the error responses"},
					},
					{
						Focus:    "Relational databases",
						Weekday:  []string{"tables and relationships", "SELECT and JOIN", "INSERT, UPDATE, DELETE", "indexes", "migrations"},
						Saturday: []string{"Start wiring the API to a database", "Design the schema"},
						Sunday:   []string{"Finish the persistence layer", "Review query performance"},
					},
					{
						Focus:    "Authentication and sessions",
						Weekday:  []string{"password hashing", "token-based auth", "protecting routes", "user roles", "common auth mistakes"},
						Saturday: []string{"Start adding signup and login", "Decide the token strategy"},
						Sunday:   []string{"Finish the auth flow", "Review against an auth checklist"},
					},
					{
						Focus:    "Deployment and operations",
						Weekday:  []string{"environment configuration", "logging", "process managers and containers", "health checks", "monitoring basics"},
						Saturday: []string{"Start deploying the full stack", "Choose a hosting provider"},
						Sunday:   []string{"Finish the deployment", "Review logs after generating traffic"},
					},
				},
			},
			{
				Goal: "A complete full-stack project",
				Weeks: []WeekContent{
					{
						Focus:    "Project planning",
						Weekday:  []string{"writing a project brief", "user stories", "scoping an MVP", "choosing the stack", "setting milestones"},
						Saturday: []string{"Start the capstone project setup", "Write the project brief"},
						Sunday:   []string{"Finish the skeleton and CI", "Review the milestone plan"},
					},
					{
						Focus:    "Core feature development",
						Weekday:  []string{"feature branches", "API-first development", "frontend integration", "input validation end to end", "incremental commits"},
						Saturday: []string{"Start the first core feature", "Break it into tasks"},
						Sunday:   []string{"Finish the first feature", "Review the diff as if reviewing a stranger's PR"},
					},
					{
						Focus:    "Testing and hardening",
						Weekday:  []string{"unit tests", "integration tests", "edge cases and empty states", "performance passes", "security passes"},
						Saturday: []string{"Start the test suite", "List the riskiest paths"},
						Sunday:   []string{"Finish the critical-path tests", "Review coverage of the risky paths"},
					},
					{
						Focus:    "Polish and presentation",
						Weekday:  []string{"UX polish", "empty and error states", "README and screenshots", "demo script", "collecting feedback"},
						Saturday: []string{"Start the final polish pass", "Record a demo walkthrough"},
						Sunday:   []string{"Finish and publish the project", "Review lessons learned in writing"},
					},
				},
			},
		},
	},
	"data-science": {
		Key: "data-science",
		YearGoals: []string{
			"Build strong foundations in Python, statistics and data handling",
			"Master machine learning fundamentals and real datasets",
			"Deliver end-to-end data projects and communicate results",
			"Specialize in a domain and build a public portfolio",
		},
		Months: []MonthContent{
			{
				Goal: "Python for data work",
				Weeks: []WeekContent{
					{
						Focus:    "Python fundamentals",
						Weekday:  []string{"syntax and types", "functions and modules", "lists and dicts", "comprehensions", "reading files"},
						Saturday: []string{"Start a CSV report script", "Pick a public dataset"},
						Sunday:   []string{"Finish the report script", "Review code structure"},
					},
					{
						Focus:    "NumPy and pandas",
						Weekday:  []string{"arrays and vectorization", "dataframes", "filtering and grouping", "joins and reshaping", "missing data"},
						Saturday: []string{"Start an exploratory analysis notebook", "Frame three questions about the data"},
						Sunday:   []string{"Finish the analysis", "Review the answers against the questions"},
					},
				},
			},
			{
				Goal: "Statistics and visualization",
				Weeks: []WeekContent{
					{
						Focus:    "Descriptive statistics",
						Weekday:  []string{"distributions", "central tendency and spread", "correlation", "sampling", "bias traps"},
						Saturday: []string{"Start a statistics summary of your dataset", "Choose the key metrics"},
						Sunday:   []string{"Finish the summary", "Review surprising findings"},
					},
					{
						Focus:    "Data visualization",
						Weekday:  []string{"chart types and when to use them", "matplotlib basics", "labeling and annotation", "small multiples", "honest axes"},
						Saturday: []string{"Start a visual story from your analysis", "Storyboard five charts"},
						Sunday:   []string{"Finish the visual story", "Review each chart for clarity"},
					},
				},
			},
		},
	},
	// 以下方向暂未编写月度内容，显式走通用计划
	"mobile-dev": {
		Key:      "mobile-dev",
		Fallback: true,
		YearGoals: []string{
			"Learn programming fundamentals and your first mobile framework",
			"Build and publish complete mobile applications",
			"Master platform APIs, performance and release engineering",
			"Specialize and build a portfolio of shipped apps",
		},
	},
	"ai-ml": {
		Key:      "ai-ml",
		Fallback: true,
		YearGoals: []string{
			"Build math, Python and classical ML foundations",
			"Go deep on deep learning and model training",
			"Work with production ML systems and real data",
			"Specialize in a subfield and publish your work",
		},
	},
	"cybersecurity": {
		Key:      "cybersecurity",
		Fallback: true,
		YearGoals: []string{
			"Learn networking, operating systems and security fundamentals",
			"Practice offensive and defensive techniques in labs",
			"Earn certifications and work on real assessments",
			"Specialize and contribute to the security community",
		},
	},
}
