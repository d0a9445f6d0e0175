package auth

// Identity — явный request-scoped маркер вызывающей стороны. Передаётся в
// каждую операцию вместо чтения из глобального контекста: либо проверенный
// token identifier, либо явный аноним.
type Identity struct {
	tokenIdentifier string
}

// Verified создаёт identity для проверенного token identifier.
func Verified(tokenIdentifier string) Identity {
	return Identity{tokenIdentifier: tokenIdentifier}
}

// Anonymous создаёт маркер неаутентифицированного вызова.
func Anonymous() Identity {
	return Identity{}
}

// Authenticated сообщает, прошёл ли вызывающий проверку токена.
func (i Identity) Authenticated() bool {
	return i.tokenIdentifier != ""
}

// TokenIdentifier возвращает идентификатор токена; пустая строка для анонима.
func (i Identity) TokenIdentifier() string {
	return i.tokenIdentifier
}
