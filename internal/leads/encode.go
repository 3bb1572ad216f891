package leads

import "bytes"

// key = email + 0x00 + id
func makeEmailKey(email, id string) []byte {
	buf := make([]byte, 0, len(email)+1+len(id))
	buf = append(buf, email...)
	buf = append(buf, 0x00)
	buf = append(buf, id...)
	return buf
}

func emailPrefix(email string) []byte {
	return append([]byte(email), 0x00)
}

func idFromEmailKey(k []byte) string {
	i := bytes.IndexByte(k, 0x00)
	if i < 0 || i+1 >= len(k) {
		return ""
	}
	return string(k[i+1:])
}
