package router

import "strings"

// View names referenced by the route table.
const (
	ViewHome            = "home"
	ViewArticle         = "article"
	ViewCategories      = "categories"
	ViewCategory        = "category"
	ViewTags            = "tags"
	ViewTag             = "tag"
	ViewSearch          = "search"
	ViewArchive         = "archive"
	ViewAbout           = "about"
	ViewLogin           = "login"
	ViewDashboard       = "dashboard"
	ViewAdminArticles   = "admin-articles"
	ViewArticleCreate   = "article-create"
	ViewArticleEdit     = "article-edit"
	ViewAdminCategories = "admin-categories"
	ViewAdminTags       = "admin-tags"
	ViewAdminComments   = "admin-comments"
)

// Route is one node of the console route table. A node with Children is a
// layout; RequiresAuth on a layout covers every route below it.
type Route struct {
	Path         string
	View         string
	Redirect     string
	RequiresAuth bool
	Children     []Route
}

// Routes is the console route table: the public layout, the login page and
// the admin layout.
var Routes = []Route{
	{
		Path: "/",
		Children: []Route{
			{Path: "", View: ViewHome},
			{Path: "article/{articleID}", View: ViewArticle},
			{Path: "category", View: ViewCategories},
			{Path: "category/{categoryID}", View: ViewCategory},
			{Path: "tag", View: ViewTags},
			{Path: "tag/{tagID}", View: ViewTag},
			{Path: "search", View: ViewSearch},
			{Path: "archive", View: ViewArchive},
			{Path: "about", View: ViewAbout},
		},
	},
	{Path: "/admin/login", View: ViewLogin},
	{
		Path:         "/admin",
		RequiresAuth: true,
		Children: []Route{
			{Path: "", Redirect: "/admin/dashboard"},
			{Path: "dashboard", View: ViewDashboard},
			{Path: "articles", View: ViewAdminArticles},
			{Path: "articles/create", View: ViewArticleCreate},
			{Path: "articles/edit/{articleID}", View: ViewArticleEdit},
			{Path: "categories", View: ViewAdminCategories},
			{Path: "tags", View: ViewAdminTags},
			{Path: "comments", View: ViewAdminComments},
		},
	},
}

// Entry is a servable route with its full path and inherited auth flag.
type Entry struct {
	Path         string
	View         string
	Redirect     string
	RequiresAuth bool
}

// Flatten resolves the table into servable entries in declaration order.
func Flatten(routes []Route) []Entry {
	var out []Entry
	flatten(&out, "", false, routes)

	return out
}

func flatten(out *[]Entry, parent string, auth bool, routes []Route) {
	for _, rt := range routes {
		path := joinPath(parent, rt.Path)
		requires := auth || rt.RequiresAuth

		if rt.View != "" || rt.Redirect != "" {
			*out = append(*out, Entry{Path: path, View: rt.View, Redirect: rt.Redirect, RequiresAuth: requires})
		}
		flatten(out, path, requires, rt.Children)
	}
}

func joinPath(parent, child string) string {
	switch {
	case child == "":
		return parent
	case strings.HasPrefix(child, "/"):
		return child
	case strings.HasSuffix(parent, "/"):
		return parent + child
	default:
		return parent + "/" + child
	}
}
