package resource_test

import (
	"context"
	"fmt"

	"github.com/kbukum/neysla/logger"
	"github.com/kbukum/neysla/resource"
	"github.com/kbukum/neysla/testutil"
)

func ExampleResource_Get() {
	stub := testutil.NewStubTransport(testutil.JSONOutcome(200, `{"title":"hello"}`))
	posts, err := resource.New(resource.Descriptor{
		URL:      "https://api.example.com/",
		Segments: []string{"users", "posts"},
	}, stub, resource.WithLogger(logger.Nop()))
	if err != nil {
		panic(err)
	}

	call, err := posts.Get(context.Background(), resource.WithDelimiters(7, 3))
	if err != nil {
		panic(err)
	}
	env, err := call.Wait(context.Background())
	if err != nil {
		panic(err)
	}
	fmt.Println(stub.Requests()[0].URL)
	fmt.Println(env.Query("title").String())
	// Output:
	// https://api.example.com/users/7/posts/3
	// hello
}

func ExampleParseOverrides() {
	ov, err := resource.ParseOverrides(map[string]any{
		"delimiters":  []any{7},
		"requestType": "json",
		"body":        map[string]any{"title": "draft"},
	})
	if err != nil {
		panic(err)
	}
	fmt.Println(ov.Delimiters, ov.RequestType, ov.Body["title"])
	// Output: [7] json draft
}
