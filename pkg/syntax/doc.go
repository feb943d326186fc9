/*
Package syntax implements the TimeScript line grammar shared by the compiler and the validator.

A script is read one line at a time. Each line is first classified by its leading
markers (see Classify) and then handed to the extractor of its Form, which walks
the line with a small cursor over literal delimiters and named fields:

	#[ uiType - dataTag ]- voiceType < speaker >~: content {key:value, ...}
	#[(A1)- dataTag ]- voiceType < speaker >~( qid ):
	        -( id )::[ uiType - dataTag ]- voiceType < speaker >::< target >~: content {...}
	+#[ uiType - dataTag ]- voiceType < speaker >~: content {...}
	#< label > end;

Extractors never keep state between lines; context tracking (open questions and
responses) belongs to the callers.
*/
package syntax
