package interfaces

// ApplicationContext carries a parsed request body and request-scoped keys
// from the web layer into controllers without binding them to gin directly.
type ApplicationContext[T any] struct {
	Ctx       any
	Body      *T
	Keys      map[string]any
	UserAgent string
}

func (ac *ApplicationContext[T]) GetStringContextData(key string) string {
	value, ok := ac.Keys[key].(string)
	if !ok {
		return ""
	}
	return value
}

type ApplicationContextWithoutBody struct {
	Ctx  any
	Keys map[string]any
}
