// Package mashub provides a Go client SDK for the MasHub API: smart
// contract deployment, tokenization, KYC compliance and analytics.
//
// Every call goes through one request engine that resolves the base URL,
// authenticates with a Bearer token, keeps outbound requests at least
// 100ms apart across the whole process, bounds each attempt with a timeout
// and retries failures with exponential backoff. Failures are *Error values
// of five kinds; match them with errors.Is and the Err* sentinels or with
// KindOf and CodeOf.
//
// Basic usage:
//
//	client, err := mashub.New("your-api-key", mashub.WithEnvironment(mashub.EnvironmentStaging))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if !client.Ping(ctx) {
//	    log.Fatal("MasHub is unreachable")
//	}
//
//	projects, err := client.Contracts.ListProjects(ctx, 1)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, p := range projects.Result {
//	    fmt.Println(p.Slug, p.ProjectName)
//	}
//
// Tokenization completes on chain after Tokens.Create returns; use
// Tokens.WaitForConfirmation to poll until the token is confirmed or failed.
//
// Endpoints without a typed method are reachable through Client.Execute
// and the generic Request function.
package mashub
