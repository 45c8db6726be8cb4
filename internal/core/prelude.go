package core

// Prelude is Huckleberry surface source, evaluated against every fresh root
// environment. It registers the keyword-message methods that make numbers
// (selector `number?`) and, for `=`/`!=`, any value (the always-matching
// selector `true`) receivers for idiomatic messages, grounded on
// the Rust original's lib/src/modules/huckleberry.rs.
const Prelude = `
(defm number? [to: max] (range this max))
(defm number? [to: max do: fn] (for-each i (range this max) (fn i)))

(defm number? [+: other] (+ this other))
(defm number? [-: other] (- this other))
(defm number? [*: other] (* this other))
(defm number? [/: other] (/ this other))
(defm number? [less-than: other] (lt this other))
(defm number? [greater-than: other] (gt this other))

(defm true [=: other] (= this other))
(defm true [!=: other] (!= this other))
`
