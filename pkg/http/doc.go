// Package http is an HTTP client that can also reach a Lambda function
// directly.
//
// Standard requests:
//
//	client, _ := http.NewClient(ctx)
//	resp, _ := client.Get(ctx, "https://example.netlify.app/.netlify/functions/notion-blog?mode=list")
//
// Direct invocations use a lambda:// URL:
//
//	lambda://<function-name>/<path>?<query-params>
//	lambda://notion-blog/?mode=detail&slug=hello-world
//
// The request is converted to an API Gateway v1 proxy event, the function
// is invoked synchronously and its proxy response is converted back into
// an *http.Response. The same conversions back the local dev server.
package http
