package service

// TokenGenerator produces cryptographically unpredictable opaque tokens.
type TokenGenerator interface {
	Generate() (string, error)
}

// NicknameGenerator proposes nickname candidates. Candidates are not
// guaranteed unique; callers retry on collision.
type NicknameGenerator interface {
	Generate() string
}
