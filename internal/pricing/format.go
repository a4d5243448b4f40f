package pricing

import "strconv"

// Format renders an amount in rupees with Indian digit grouping, e.g.
// 1599000 as "₹15,99,000".
func Format(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	digits := strconv.FormatInt(amount, 10)
	if len(digits) <= 3 {
		return sign + "₹" + digits
	}

	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	out := make([]byte, 0, len(digits)+len(digits)/2)
	if lead := len(head) % 2; lead > 0 {
		out = append(out, head[:lead]...)
		head = head[lead:]
	}
	for len(head) > 0 {
		if len(out) > 0 {
			out = append(out, ',')
		}
		out = append(out, head[:2]...)
		head = head[2:]
	}
	return sign + "₹" + string(out) + "," + tail
}
