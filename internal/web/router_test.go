package web

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/shubham2799/BlogApp/internal/database"
	"github.com/shubham2799/BlogApp/internal/services"
)

type testApp struct {
	srv   *httptest.Server
	blogs *services.BlogService
	users *services.UserService
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	db, err := database.New(":memory:")
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	db.SetMaxOpenConns(1)
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	userSvc := services.NewUserService(db)
	blogSvc := services.NewBlogService(db, bluemonday.UGCPolicy())
	sessionSvc := services.NewSessionService(db, time.Hour)
	eventSvc := services.NewEventService(db)

	router, err := NewRouter(blogSvc, userSvc, sessionSvc, eventSvc, "test-secret")
	if err != nil {
		t.Fatalf("build router: %v", err)
	}

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &testApp{srv: srv, blogs: blogSvc, users: userSvc}
}

// newClient returns a cookie-carrying client. With follow=false the client
// stops at the first response so redirects can be inspected.
func newClient(t *testing.T, follow bool) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookie jar: %v", err)
	}
	client := &http.Client{Jar: jar}
	if !follow {
		client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}
	return client
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(body)
}

// register signs a user up through the real route, leaving the session
// cookie in the client's jar.
func register(t *testing.T, app *testApp, client *http.Client, username, password string) {
	t.Helper()
	resp, err := client.PostForm(app.srv.URL+"/register", url.Values{
		"username": {username},
		"password": {password},
	})
	if err != nil {
		t.Fatalf("register %s: %v", username, err)
	}
	body := readBody(t, resp)
	if !strings.Contains(body, "Welcome to The BlogApp!") {
		t.Fatalf("register %s: welcome flash missing from %q...", username, body[:min(len(body), 200)])
	}
}

func location(t *testing.T, resp *http.Response) string {
	t.Helper()
	loc := resp.Header.Get("Location")
	if loc == "" {
		t.Fatalf("expected a redirect, got status %d with no Location", resp.StatusCode)
	}
	return loc
}

func TestRootRedirectsToBlogs(t *testing.T) {
	app := newTestApp(t)
	client := newClient(t, false)

	resp, err := client.Get(app.srv.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	readBody(t, resp)
	if loc := location(t, resp); loc != "/blogs" {
		t.Fatalf("Location = %q, want /blogs", loc)
	}
}

func TestRegisterCreatePostAndSanitize(t *testing.T) {
	app := newTestApp(t)
	client := newClient(t, true)
	register(t, app, client, "alice", "s3cret")

	resp, err := client.PostForm(app.srv.URL+"/blogs", url.Values{
		"title": {"Hi"},
		"body":  {"<script>x</script>hello"},
	})
	if err != nil {
		t.Fatal(err)
	}
	body := readBody(t, resp)
	if !strings.Contains(body, "Blog created!!") {
		t.Fatal("success flash missing after create")
	}
	if !strings.Contains(body, "Hi") {
		t.Fatal("created post missing from listing")
	}

	blogs, err := app.blogs.GetAllBlogs()
	if err != nil {
		t.Fatal(err)
	}
	if len(blogs) != 1 {
		t.Fatalf("len = %d, want 1", len(blogs))
	}
	if blogs[0].Author != "alice" {
		t.Fatalf("author = %q, want alice", blogs[0].Author)
	}
	if strings.Contains(blogs[0].Body, "<script>") {
		t.Fatalf("stored body not sanitized: %q", blogs[0].Body)
	}
}

func TestAnonymousMutationsRedirectToLogin(t *testing.T) {
	app := newTestApp(t)
	post, err := app.blogs.CreateBlog("alice", services.BlogInput{Title: "Hi", Body: "x"})
	if err != nil {
		t.Fatal(err)
	}

	client := newClient(t, false)
	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/blogs/new"},
		{http.MethodGet, "/blogs/" + post.ID + "/edit"},
		{http.MethodPut, "/blogs/" + post.ID},
		{http.MethodDelete, "/blogs/" + post.ID},
		{http.MethodPost, "/blogs"},
	}

	for _, p := range paths {
		req, err := http.NewRequest(p.method, app.srv.URL+p.path, strings.NewReader("title=x"))
		if err != nil {
			t.Fatal(err)
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		resp, err := client.Do(req)
		if err != nil {
			t.Fatal(err)
		}
		readBody(t, resp)
		if loc := location(t, resp); loc != "/login" {
			t.Errorf("%s %s: Location = %q, want /login", p.method, p.path, loc)
		}
	}
}

func TestNonOwnerUpdateDenied(t *testing.T) {
	app := newTestApp(t)
	post, err := app.blogs.CreateBlog("alice", services.BlogInput{Title: "Hi", Body: "original"})
	if err != nil {
		t.Fatal(err)
	}

	bob := newClient(t, false)
	register(t, app, &http.Client{Jar: bob.Jar}, "bob", "pw")

	resp, err := bob.PostForm(app.srv.URL+"/blogs/"+post.ID, url.Values{
		"_method": {"PUT"},
		"title":   {"Hijacked"},
		"body":    {"mine now"},
	})
	if err != nil {
		t.Fatal(err)
	}
	readBody(t, resp)
	if loc := location(t, resp); loc != "/blogs/"+post.ID {
		t.Fatalf("Location = %q, want the post detail", loc)
	}

	// The flash surfaces on the next rendered page.
	follow := &http.Client{Jar: bob.Jar}
	detail, err := follow.Get(app.srv.URL + "/blogs/" + post.ID)
	if err != nil {
		t.Fatal(err)
	}
	if body := readBody(t, detail); !strings.Contains(body, "Permission Denied!!") {
		t.Fatal("permission denied flash missing")
	}

	// The post is unchanged.
	got, err := app.blogs.GetBlogByID(post.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Title != "Hi" || got.Author != "alice" {
		t.Fatalf("post changed by denied update: %+v", got)
	}
}

func TestUnknownPostRedirectsToListing(t *testing.T) {
	app := newTestApp(t)
	client := newClient(t, false)

	resp, err := client.Get(app.srv.URL + "/blogs/does-not-exist")
	if err != nil {
		t.Fatal(err)
	}
	readBody(t, resp)
	if loc := location(t, resp); loc != "/blogs" {
		t.Fatalf("Location = %q, want /blogs", loc)
	}

	follow := &http.Client{Jar: client.Jar}
	listing, err := follow.Get(app.srv.URL + "/blogs")
	if err != nil {
		t.Fatal(err)
	}
	if body := readBody(t, listing); !strings.Contains(body, "Blog not found!!") {
		t.Fatal("not-found flash missing from listing")
	}
}

func TestOwnerEditUpdateDelete(t *testing.T) {
	app := newTestApp(t)
	client := newClient(t, true)
	register(t, app, client, "alice", "s3cret")

	post, err := app.blogs.CreateBlog("alice", services.BlogInput{Title: "Hi", Body: "first"})
	if err != nil {
		t.Fatal(err)
	}

	// Edit form is pre-filled.
	resp, err := client.Get(app.srv.URL + "/blogs/" + post.ID + "/edit")
	if err != nil {
		t.Fatal(err)
	}
	if body := readBody(t, resp); !strings.Contains(body, "first") {
		t.Fatal("edit form not pre-filled with current body")
	}

	// Update lands on the detail page with the success flash.
	resp, err = client.PostForm(app.srv.URL+"/blogs/"+post.ID, url.Values{
		"_method": {"PUT"},
		"title":   {"Hi again"},
		"body":    {"second"},
	})
	if err != nil {
		t.Fatal(err)
	}
	body := readBody(t, resp)
	if !strings.Contains(body, "Blog edited!!") || !strings.Contains(body, "Hi again") {
		t.Fatal("update did not land on the edited detail page")
	}

	// Delete lands on the listing; the post is gone.
	resp, err = client.PostForm(app.srv.URL+"/blogs/"+post.ID, url.Values{
		"_method": {"DELETE"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if body := readBody(t, resp); !strings.Contains(body, "Blog deleted!!") {
		t.Fatal("delete flash missing")
	}
	if _, err := app.blogs.GetBlogByID(post.ID); err == nil {
		t.Fatal("post still present after delete")
	}

	// A second delete finds nothing and reports not-found.
	resp, err = client.PostForm(app.srv.URL+"/blogs/"+post.ID, url.Values{
		"_method": {"DELETE"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if body := readBody(t, resp); !strings.Contains(body, "Blog not found!!") {
		t.Fatal("second delete should flash not-found")
	}
}

func TestLoginLogout(t *testing.T) {
	app := newTestApp(t)
	if _, err := app.users.Register("alice", "s3cret"); err != nil {
		t.Fatal(err)
	}

	client := newClient(t, true)

	// Wrong password bounces back to the login form.
	resp, err := client.PostForm(app.srv.URL+"/login", url.Values{
		"username": {"alice"},
		"password": {"wrong"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if body := readBody(t, resp); !strings.Contains(body, "Unknown username or wrong password!!") {
		t.Fatal("failed login flash missing")
	}

	// Correct credentials establish the session.
	resp, err = client.PostForm(app.srv.URL+"/login", url.Values{
		"username": {"alice"},
		"password": {"s3cret"},
	})
	if err != nil {
		t.Fatal(err)
	}
	readBody(t, resp)

	resp, err = client.Get(app.srv.URL + "/blogs/new")
	if err != nil {
		t.Fatal(err)
	}
	if body := readBody(t, resp); !strings.Contains(body, "New Post") {
		t.Fatal("authenticated user cannot reach the new-post form")
	}

	// Logout terminates the session server-side.
	resp, err = client.Get(app.srv.URL + "/logout")
	if err != nil {
		t.Fatal(err)
	}
	if body := readBody(t, resp); !strings.Contains(body, "Logged you out!!") {
		t.Fatal("logout flash missing")
	}

	bare := newClient(t, false)
	bare.Jar = client.Jar
	resp, err = bare.Get(app.srv.URL + "/blogs/new")
	if err != nil {
		t.Fatal(err)
	}
	readBody(t, resp)
	if loc := location(t, resp); loc != "/login" {
		t.Fatalf("after logout Location = %q, want /login", loc)
	}
}
