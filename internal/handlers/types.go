package handlers

import "time"

// ShortenRequest carries the URL to shorten, for either product. The field
// is schema-optional so a missing link maps to the documented 400 instead
// of a generic validation failure.
type ShortenRequest struct {
	Body struct {
		Link string `doc:"The URL to shorten" example:"https://example.com/very/long/path" json:"link,omitempty"`
	}
}

// ShortenResponse is the response for a successfully created alias.
type ShortenResponse struct {
	Body struct {
		Code          int    `doc:"HTTP status code"          example:"200"                                  json:"code"`
		ShortenedLink string `doc:"The full alias URL"        example:"http://localhost:8888/public/1a2b3c4d" json:"shortened_link"`
		Lifespan      int    `doc:"Alias lifetime in minutes" example:"120"                                  json:"lifespan"`
	}
}

// RedirectRequest is the request for following an alias.
type RedirectRequest struct {
	Code string `doc:"The alias code" example:"1a2b3c4d" path:"code"`
}

// RedirectResponse redirects to the target URL of an active alias.
type RedirectResponse struct {
	Status  int
	Headers struct {
		Location string `doc:"The target URL" header:"Location"`
	}
}

// ExpiresResponse reports when an alias stops redirecting. It is served
// for expired aliases too; only unknown codes get a 404.
type ExpiresResponse struct {
	Body struct {
		Code      int       `doc:"HTTP status code" example:"200"      json:"code"`
		ShortURL  string    `doc:"The alias code"   example:"1a2b3c4d" json:"shortUrl"`
		ExpiresAt time.Time `doc:"Expiry instant"                      json:"expires_at"`
	}
}

// LinksResponse maps each of the caller's original URLs to its alias URL.
type LinksResponse struct {
	Body struct {
		Code                 int               `doc:"HTTP status code" example:"200" json:"code"`
		ListOfConvertedLinks map[string]string `doc:"original_url to alias URL"     json:"list_of_converted_links"`
	}
}

// SignUpRequest carries new account details.
type SignUpRequest struct {
	Body struct {
		Username string `doc:"Display name"      example:"ted"             json:"username,omitempty"`
		Email    string `doc:"Login email"       example:"ted@example.com" json:"email,omitempty"`
		Password string `doc:"Account password"                            json:"password,omitempty"`
	}
}

// UserPayload is the public view of an account. It never carries the
// password hash.
type UserPayload struct {
	ID        string    `doc:"User id"       json:"id"`
	Username  string    `doc:"Display name"  json:"username"`
	Email     string    `doc:"Login email"   json:"email"`
	CreatedAt time.Time `doc:"Creation time" json:"created_at"`
}

// SignUpResponse confirms account creation.
type SignUpResponse struct {
	Body struct {
		Message string      `doc:"Confirmation message" example:"User created successfully" json:"message"`
		User    UserPayload `doc:"The created account"                                      json:"user"`
	}
}

// LogInRequest carries login credentials.
type LogInRequest struct {
	Body struct {
		Email    string `doc:"Login email" example:"ted@example.com" json:"email,omitempty"`
		Password string `doc:"Password"                              json:"password,omitempty"`
	}
}

// LogInResponse carries the session bearer token.
type LogInResponse struct {
	Body struct {
		Message string `doc:"Confirmation message" example:"Logged in successfully" json:"message"`
		Token   string `doc:"Bearer session token"                                  json:"token"`
	}
}
