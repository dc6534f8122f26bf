// Package encryption encrypts and decrypts byte buffers with AES-256 in CBC mode and PKCS#7 padding.
//
// Blobs are base64 text. In raw-key mode a blob decodes to iv(16) || ciphertext; in password mode
// to salt(16) || iv(16) || ciphertext, the key being derived from the password and that salt.
// There is no authentication tag: a wrong key or corrupted data is detected by padding validation
// and reported as ErrInvalidCiphertext.
package encryption
