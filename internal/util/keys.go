package util

// StorageKey isolates user keys by namespace: aside:<ns>:<key>.
func StorageKey(namespace, key string) string {
	return "aside:" + namespace + ":" + key
}

// StorageKeyLen is len(StorageKey(namespace, key)) without building the string.
func StorageKeyLen(namespace, key string) int {
	return len("aside:") + len(namespace) + 1 + len(key)
}
