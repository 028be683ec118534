// Package fitroom provides an in-process Go client for product search and
// virtual try-on, without running the HTTP server.
//
// Search proxies Amazon product search through ScraperAPI and returns at most
// ten normalized products. TryOn sends a person photo and a garment image to a
// Gemini image model and returns the edited photo.
//
//	client, _ := fitroom.New(
//	    fitroom.WithSearchAPIKey(os.Getenv("SCRAPERAPI_KEY")),
//	    fitroom.WithGenerativeAPIKey(os.Getenv("GENAI_API_KEY")),
//	)
//	res, _ := client.Search(ctx, "linen shirt")
//	out, _ := client.TryOnBytes(ctx, personPNG, garmentPNG)
//	png, _ := out.PNG()
package fitroom
