package encryption

// Accessors for the external tests to look inside a blob.

func DecodedLen(blob []byte) (int, error) {
	raw, err := decode(blob)
	if err != nil {
		return 0, err
	}

	return len(raw), nil
}

func Salt(blob []byte) ([]byte, error) {
	raw, err := decode(blob)
	if err != nil {
		return nil, err
	}

	salt, _, err := splitSalt(raw)

	return salt, err
}

func DecryptWithSalt(blob, key []byte) ([]byte, error) {
	raw, err := decode(blob)
	if err != nil {
		return nil, err
	}

	_, rest, err := splitSalt(raw)
	if err != nil {
		return nil, err
	}

	return openCBC(key, rest)
}
