// Package lang converts YAML mappings into a flat assignment language.
//
// # Output
//
// Each top-level key of the input becomes one statement:
//
//	name := literal;
//
// Names must consist only of ASCII letters ([IsValidName]). Literals are
// produced by [Convert]:
//
//	number                     30, 1.5
//	string                     'SensorX'
//	list                       list(1,'a',list())
//	single key holding a list  list(...)   (the key is dropped)
//
// Anything else, including booleans, nulls and mappings of any other shape,
// is rejected with [ErrInvalidValue].
//
// # Example
//
// Input:
//
//	deviceName: SensorX
//	interval: 30
//	sensors:
//	  - time: ["30 seconds", "15 minutes"]
//	  - humidity
//
// Output:
//
//	deviceName := 'SensorX';
//	interval := 30;
//	sensors := list(list('30 seconds','15 minutes'),'humidity');
//
// # Usage
//
//	doc, err := lang.ParseReader(ctx, r)
//	if err != nil {
//	    return err
//	}
//
//	err = doc.Format(ctx, w)
//
// Conversion is all-or-nothing: [Document.Format] writes nothing if any entry
// has an invalid name or value. [Check] reports every entry's outcome
// individually for diagnostics.
package lang
